package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"datemate/tracing"

	"github.com/gorilla/mux"
	"github.com/jtumidanski/api2go/jsonapi"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

type HandlerDependency struct {
	l   logrus.FieldLogger
	ctx context.Context
}

func (h HandlerDependency) Logger() logrus.FieldLogger {
	return h.l
}

func (h HandlerDependency) Context() context.Context {
	return h.ctx
}

type HandlerContext struct {
	si jsonapi.ServerInformation
}

func (h HandlerContext) ServerInformation() jsonapi.ServerInformation {
	return h.si
}

type GetHandler func(d *HandlerDependency, c *HandlerContext) http.HandlerFunc

type InputHandler[M any] func(d *HandlerDependency, c *HandlerContext, model M) http.HandlerFunc

// ParseInput decodes the request body into M. Malformed JSON is answered with 400.
func ParseInput[M any](d *HandlerDependency, c *HandlerContext, next InputHandler[M]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var model M

		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
			d.Logger().WithError(err).Debug("Unable to decode request body.")
			WriteErrorResponse(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		next(d, c, model)(w, r)
	}
}

func RegisterHandler(l logrus.FieldLogger) func(si jsonapi.ServerInformation) func(handlerName string, handler GetHandler) http.HandlerFunc {
	return func(si jsonapi.ServerInformation) func(handlerName string, handler GetHandler) http.HandlerFunc {
		return func(handlerName string, handler GetHandler) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				sl, span := tracing.StartServerSpan(l, handlerName, r)
				defer span.Finish()

				ctx := opentracing.ContextWithSpan(r.Context(), span)
				handler(&HandlerDependency{l: sl, ctx: ctx}, &HandlerContext{si: si})(w, r.WithContext(ctx))
			}
		}
	}
}

func RegisterInputHandler[M any](l logrus.FieldLogger) func(si jsonapi.ServerInformation) func(handlerName string, handler InputHandler[M]) http.HandlerFunc {
	return func(si jsonapi.ServerInformation) func(handlerName string, handler InputHandler[M]) http.HandlerFunc {
		return func(handlerName string, handler InputHandler[M]) http.HandlerFunc {
			return RegisterHandler(l)(si)(handlerName, func(d *HandlerDependency, c *HandlerContext) http.HandlerFunc {
				return ParseInput[M](d, c, handler)
			})
		}
	}
}

type ProfileIdHandler func(profileId uint32) http.HandlerFunc

// ParseProfileId reads the {profileId} path variable. Anything that is not a positive integer is answered with 400.
func ParseProfileId(l logrus.FieldLogger, next ProfileIdHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := mux.Vars(r)["profileId"]
		profileId, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || profileId == 0 {
			l.WithField("profileId", raw).Debug("Unable to parse profileId from request.")
			WriteErrorResponse(w, http.StatusBadRequest, "invalid profile_id")
			return
		}
		next(uint32(profileId))(w, r)
	}
}

// WriteErrorResponse writes a JSON error response
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error": map[string]interface{}{
			"status": statusCode,
			"title":  http.StatusText(statusCode),
			"detail": message,
		},
	}

	_ = json.NewEncoder(w).Encode(errorResponse)
}
