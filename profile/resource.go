package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"datemate/kafka/producer"
	"datemate/questionnaire"
	"datemate/rest"

	"github.com/Chronicle20/atlas-rest/server"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jtumidanski/api2go/jsonapi"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InitializeRoutes registers the profile and match routes
func InitializeRoutes(db *gorm.DB, index Index, pf producer.Factory) func(serverInfo jsonapi.ServerInformation) func(router *mux.Router, logger logrus.FieldLogger) {
	return func(serverInfo jsonapi.ServerInformation) func(router *mux.Router, logger logrus.FieldLogger) {
		return func(router *mux.Router, logger logrus.FieldLogger) {
			// POST /api/profiles
			router.HandleFunc("/profiles",
				rest.RegisterInputHandler[questionnaire.Payload](logger)(serverInfo)("create_profile", createProfileHandler(db, index, pf))).
				Methods(http.MethodPost)

			// GET /api/profiles
			router.HandleFunc("/profiles",
				rest.RegisterHandler(logger)(serverInfo)("get_profiles", getProfilesHandler(db, index, pf))).
				Methods(http.MethodGet)

			// GET /api/matches/{profileId}?top_k=5
			router.HandleFunc("/matches/{profileId}",
				rest.RegisterHandler(logger)(serverInfo)("get_matches", getMatchesHandler(db, index, pf))).
				Methods(http.MethodGet)
		}
	}
}

func createProfileHandler(db *gorm.DB, index Index, pf producer.Factory) rest.InputHandler[questionnaire.Payload] {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext, input questionnaire.Payload) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			p, err := NewProcessorWithProducer(d.Logger(), d.Context(), db, index, pf(d.Logger())(d.Context())).CreateAndEmit(uuid.New(), input)
			if err != nil {
				if errors.Is(err, ErrInvalidProfile) {
					rest.WriteErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
					return
				}
				rest.WriteErrorResponse(w, http.StatusInternalServerError, "unable to store profile")
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(CreatedResponse{ProfileId: p.Id()})
		}
	}
}

func getProfilesHandler(db *gorm.DB, index Index, pf producer.Factory) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ps, err := NewProcessorWithProducer(d.Logger(), d.Context(), db, index, pf(d.Logger())(d.Context())).GetAll()()
			if err != nil {
				d.Logger().WithError(err).Error("Unable to retrieve profiles.")
				rest.WriteErrorResponse(w, http.StatusInternalServerError, "unable to retrieve profiles")
				return
			}

			res, err := TransformAll(ps)
			if err != nil {
				rest.WriteErrorResponse(w, http.StatusInternalServerError, "unable to transform profiles")
				return
			}

			query := r.URL.Query()
			queryParams := jsonapi.ParseQueryFields(&query)
			server.MarshalResponse[[]RestProfile](d.Logger())(w)(c.ServerInformation())(queryParams)(res)
		}
	}
}

func getMatchesHandler(db *gorm.DB, index Index, pf producer.Factory) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseProfileId(d.Logger(), func(profileId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				topK := DefaultTopK
				if raw := r.URL.Query().Get("top_k"); raw != "" {
					v, err := strconv.Atoi(raw)
					if err != nil {
						rest.WriteErrorResponse(w, http.StatusBadRequest, "invalid top_k")
						return
					}
					topK = v
				}

				ms, err := NewProcessorWithProducer(d.Logger(), d.Context(), db, index, pf(d.Logger())(d.Context())).GetMatches(profileId, topK)()
				if err != nil {
					if errors.Is(err, ErrProfileNotFound) {
						rest.WriteErrorResponse(w, http.StatusNotFound, ErrProfileNotFound.Error())
						return
					}
					d.Logger().WithError(err).WithField("profileId", profileId).Error("Unable to rank matches.")
					rest.WriteErrorResponse(w, http.StatusInternalServerError, "unable to rank matches")
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[[]RestMatch](d.Logger())(w)(c.ServerInformation())(queryParams)(TransformMatches(ms))
			}
		})
	}
}
