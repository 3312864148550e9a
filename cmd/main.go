package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/medhatjachour/employee-management/internal/api"
	"github.com/medhatjachour/employee-management/internal/config"
	"github.com/medhatjachour/employee-management/internal/dashboard"
	"github.com/medhatjachour/employee-management/internal/exchange/producer"
	"github.com/medhatjachour/employee-management/internal/repository/employee"
	"github.com/medhatjachour/employee-management/internal/repository/manager"
	"github.com/medhatjachour/employee-management/library/pg"
	"github.com/medhatjachour/employee-management/library/yamlreader"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	cfg := MustNewConfig(parseFlags())

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = time.RFC3339

	log.Info().Msgf("pg=%+v", cfg.Postgres.Conn.Value)

	pgClient, err := pg.NewPG(rootCtx, cfg.Postgres.Conn.Value, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgClient.Close()

	employeeRepo := employee.NewRepository(pgClient.Pool())
	managerRepo := manager.NewRepository(pgClient.Pool())
	dashboardService := dashboard.NewService(employeeRepo, managerRepo)

	var staffProducer *producer.StaffProducer
	if cfg.Kafka.Enabled.Value {
		staffProducer, err = initStaffProducer(cfg.Kafka)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka producer init failed")
		}
		defer func() { _ = staffProducer.Close() }()
	}

	deps := api.ServiceDeps{
		Port:         cfg.UserAPI.Port.Value,
		EmployeeRepo: employeeRepo,
		ManagerRepo:  managerRepo,
		Dashboard:    dashboardService,
	}
	if staffProducer != nil {
		deps.Producer = staffProducer
	}

	apiService := api.NewService(deps)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Msg("starting HTTP API")

		if err := apiService.Start(gctx); err != nil {
			log.Error().Err(err).Msg("HTTP API stopped with error")

			return err
		}

		log.Info().Msg("HTTP API stopped")

		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = group.Wait()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("signal received, graceful shutdown...")
		<-done
		log.Info().Msg("all services stopped")
	case <-done:
		log.Info().Msg("all services stopped")
	}
}

func initStaffProducer(kafkaConfig config.KafkaConfig) (*producer.StaffProducer, error) {
	sCfg := sarama.NewConfig()
	sCfg.Version = sarama.V3_3_2_0
	sCfg.Producer.Return.Successes = true
	sCfg.Producer.RequiredAcks = sarama.WaitForAll
	sCfg.Producer.Idempotent = true
	sCfg.Net.MaxOpenRequests = 1
	sCfg.Producer.Retry.Max = 5
	sCfg.Producer.Retry.Backoff = 200 * time.Millisecond

	sp, err := sarama.NewSyncProducer([]string{kafkaConfig.Bootstrap.Value}, sCfg)
	if err != nil {
		return nil, err
	}

	staffProd := producer.NewStaffProducer(
		sp,
		producer.Config{
			TopicEmployees: kafkaConfig.Topics.Employees.Value,
			TopicManagers:  kafkaConfig.Topics.Managers.Value,
			Source:         "staff-dashboard-api",
		},
		log.Logger,
	)

	return staffProd, nil
}

func MustNewConfig(path string) *config.Config {
	cfg, err := yamlreader.NewConfig[config.Config](path)
	if err != nil {
		log.Fatal().Str("path", path).Err(err).Msg("failed to read application config")
		return nil
	}

	return cfg
}

func parseFlags() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	godotenv.Load(".env")

	if configPath == "" {
		configPath = "config/application-local.yaml"
	}
	return configPath
}
