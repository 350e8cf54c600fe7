package main

import (
	"os"

	"datemate/database"
	profileConsumer "datemate/kafka/consumer/profile"
	"datemate/kafka/producer"
	"datemate/logger"
	"datemate/match"
	"datemate/profile"
	"datemate/scheduler"
	"datemate/service"
	"datemate/tracing"

	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-rest/server"
	"github.com/google/uuid"
)

const serviceName = "datemate-profiles"

type Server struct {
	baseUrl string
	prefix  string
}

func (s Server) GetBaseURL() string {
	return s.baseUrl
}

func (s Server) GetPrefix() string {
	return s.prefix
}

func GetServer() Server {
	return Server{
		baseUrl: "",
		prefix:  "/api/",
	}
}

// consumerGroupId is unique per replica. Each replica keeps its own in-memory index and must see every event.
func consumerGroupId() string {
	return serviceName + "-" + uuid.New().String()
}

func main() {
	l := logger.CreateLogger(serviceName)
	l.Infoln("Starting main service.")

	tdm := service.GetTeardownManager()

	tc, err := tracing.InitTracer(l)(serviceName)
	if err != nil {
		l.WithError(err).Fatal("Unable to initialize tracer.")
	}

	db := database.Connect(l, database.SetMigrations(profile.Migration))

	index, err := match.NewIndex(l)
	if err != nil {
		l.WithError(err).Fatal("Unable to initialize match index.")
	}

	indexSyncScheduler := scheduler.NewIndexSyncScheduler(l, tdm.Context(), db, index)
	indexSyncScheduler.Start()
	tdm.TeardownFunc(indexSyncScheduler.Stop)

	cm := consumer.GetManager()
	profileConsumer.InitConsumers(l)(cm.AddConsumer(l, tdm.Context(), tdm.WaitGroup()))(consumerGroupId())
	profileConsumer.InitHandlers(l)(index)(cm.RegisterHandler)

	server.New(l).
		WithContext(tdm.Context()).
		WithWaitGroup(tdm.WaitGroup()).
		SetBasePath(GetServer().GetPrefix()).
		AddRouteInitializer(profile.InitializeRoutes(db, index, producer.ProviderImpl)(GetServer())).
		SetPort(os.Getenv("REST_PORT")).
		Run()

	tdm.TeardownFunc(producer.Teardown(l))
	tdm.TeardownFunc(tracing.Teardown(l)(tc))

	tdm.Wait()
	l.Infoln("Service shutdown.")
}
