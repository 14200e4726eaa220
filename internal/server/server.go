package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/cache"
	"github.com/emrgen/prd/internal/compress"
	"github.com/emrgen/prd/internal/config"
	"github.com/emrgen/prd/internal/generation"
	"github.com/emrgen/prd/internal/identity"
	"github.com/emrgen/prd/internal/jobs"
	"github.com/emrgen/prd/internal/markdown"
	"github.com/emrgen/prd/internal/module"
	"github.com/emrgen/prd/internal/queue"
	"github.com/emrgen/prd/internal/service"
	"github.com/emrgen/prd/internal/store"
	"github.com/gobuffalo/packr"
	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcvalidator "github.com/grpc-ecosystem/go-grpc-middleware/validator"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
	"google.golang.org/grpc"
)

// Server represents the server
type Server struct {
	grpcPort string
	httpPort string
}

// NewServer creates a new server
func NewServer(grpcPort, httpPort string) *Server {
	return &Server{
		grpcPort: grpcPort,
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.grpcPort, s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start starts the grpc and http servers
func Start(grpcPort, httpPort string) error {
	cnf := config.LoadConfig()
	config.ConfigureLogging(cnf)

	if grpcPort == "" {
		grpcPort = cnf.GRPCPort
	}
	if httpPort == "" {
		httpPort = cnf.HTTPPort
	}
	grpcPort = ":" + grpcPort
	httpPort = ":" + httpPort

	rdb, err := config.GetDb(cnf)
	if err != nil {
		return err
	}

	prdStore := store.NewGormStore(rdb)
	if err = prdStore.Migrate(); err != nil {
		return err
	}

	generator, err := generation.New(cnf)
	if err != nil {
		return err
	}

	verifier, err := identity.NewVerifier(cnf)
	if err != nil {
		return err
	}

	compressor, err := compress.New(cnf.Compression)
	if err != nil {
		return err
	}

	events, err := queue.NewEventQueue(cnf)
	if err != nil {
		return err
	}
	defer events.Close()

	dashboards := cache.NewDashboardCache(cnf)
	prdService := service.NewPRDService(prdStore, generator, dashboards, events, compressor)

	gl, err := net.Listen("tcp", grpcPort)
	if err != nil {
		return err
	}

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcmiddleware.ChainUnaryServer(
			grpcvalidator.UnaryServerInterceptor(),
			// verify the bearer token and inject the caller into the context
			module.UnaryServerAuthTokenInterceptor(verifier),
			// log the request time
			UnaryGrpcRequestTimeInterceptor(),
		)),
	)
	v1.RegisterPRDServiceServer(grpcServer, prdService)

	restHandler, err := NewHTTPHandler(prdService, verifier)
	if err != nil {
		return err
	}

	apiMux := http.NewServeMux()
	openapiDocs := packr.NewBox("../../docs/v1")
	docsPath := "/v1/docs/"
	apiMux.Handle(docsPath, http.StripPrefix(docsPath, http.FileServer(openapiDocs)))
	apiMux.Handle("/", restHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PUT", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	restServer := &http.Server{
		Addr:    httpPort,
		Handler: c.Handler(apiMux),
	}

	executor := jobs.NewTaskExecutor(nil, []jobs.CronJob{
		jobs.NewRenderHTMLTask(cnf.HTMLRenderSchedule, prdStore, markdown.NewRenderer()),
	})
	if err = executor.Run(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer executor.Stop()

	// make sure to wait for the servers to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	// Start the rest server
	go func() {
		defer wg.Done()
		logrus.Info("starting rest server on: ", httpPort)
		logrus.Info("click on the following link to view the API documentation: http://localhost", httpPort, docsPath)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting rest server: %v", err)
			}
		}
		logrus.Infof("rest server stopped")
	}()

	// Start the grpc server
	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting grpc server on: ", grpcPort)
		if err := grpcServer.Serve(gl); err != nil {
			logrus.Infof("grpc failed to start: %v", err)
		}
		logrus.Infof("grpc server stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	grpcServer.GracefulStop()
	if err = restServer.Shutdown(ctx); err != nil {
		logrus.Errorf("error stopping rest server: %v", err)
	}

	wg.Wait()

	return nil
}
