package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/gorillamux"
	"github.com/gorilla/mux"
	_ "github.com/joho/godotenv/autoload"

	"github.com/racquetek/booking-api/functions/gateway/handlers"
	"github.com/racquetek/booking-api/functions/gateway/helpers"
	"github.com/racquetek/booking-api/functions/gateway/interfaces"
	"github.com/racquetek/booking-api/functions/gateway/services"
	"github.com/racquetek/booking-api/functions/gateway/transport"
)

type AuthType string

const (
	None    AuthType = "none"
	Require AuthType = "require"
)

type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
	Auth    AuthType
}

// Services is everything the route table needs.
type Services struct {
	Auth        interfaces.AuthServiceInterface
	Events      interfaces.EventServiceInterface
	Ledger      interfaces.LedgerServiceInterface
	Seed        interfaces.SeedServiceInterface
	Health      interfaces.HealthCheckerInterface
	SeedEnabled bool
}

func InitRoutes(svc Services) []Route {
	auth := handlers.NewAuthHandler(svc.Auth)
	eventHandler := handlers.NewEventHandler(svc.Events)
	registrations := handlers.NewRegistrationHandler(svc.Ledger)
	seed := handlers.NewSeedHandler(svc.Seed, svc.SeedEnabled)
	health := handlers.NewHealthHandler(svc.Health)

	return []Route{
		{"/login", "POST", auth.Login, None},
		{"/admin/login", "POST", auth.AdminLogin, None},
		{"/events/{" + helpers.USER_ID_KEY + "}", "GET", eventHandler.GetEventsForUser, None},
		{"/register", "POST", registrations.Register, None},
		{"/seed", "POST", seed.Seed, None},
		{"/health", "GET", health.Health, None},
		{"/admin/events", "POST", eventHandler.CreateEvent, Require},
		{"/admin/events/{" + helpers.EVENT_ID_KEY + "}/registrations", "GET", eventHandler.GetEventRegistrations, Require},
	}
}

type App struct {
	Router *mux.Router
	API    *mux.Router
	Tokens transport.TokenParser
}

func NewApp(allowedOrigin string, tokens transport.TokenParser) *App {
	router := mux.NewRouter()
	router.Use(transport.WithRequestID, transport.WithLogging, transport.WithRecovery, transport.WithCORS(allowedOrigin))
	return &App{
		Router: router,
		API:    router.PathPrefix(helpers.API_PREFIX).Subrouter(),
		Tokens: tokens,
	}
}

func (app *App) SetupRoutes(routes []Route) {
	for _, route := range routes {
		app.addRoute(route)
	}
}

func (app *App) addRoute(route Route) {
	var handler http.Handler = route.Handler
	if route.Auth == Require {
		handler = transport.RequireAdmin(app.Tokens, handler)
	}

	// OPTIONS is matched so the CORS middleware can answer preflights.
	app.API.Handle(route.Path, handler).
		Methods(route.Method, http.MethodOptions).
		Name(route.Method + " " + route.Path)
}

func (app *App) SetupNotFoundHandler() {
	app.Router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Println("Not found", r.RequestURI)
		transport.SendErrorMessage(w, "Not found: "+r.URL.Path, http.StatusNotFound, nil)
	})

	// The /api subrouter needs its own copy or a method mismatch ends in the
	// parent's NotFoundHandler.
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Println("Method not allowed", r.Method, r.RequestURI)
		transport.SendErrorMessage(w, "Method not allowed: "+r.Method+" "+r.URL.Path, http.StatusMethodNotAllowed, nil)
	})
	app.Router.MethodNotAllowedHandler = methodNotAllowed
	app.API.MethodNotAllowedHandler = methodNotAllowed
}

func serve(cfg helpers.Config, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	cfg, err := helpers.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	store, err := services.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer store.Close()

	publisher := services.OpenPublisher(ctx, cfg)
	defer publisher.Close()

	authService := services.NewAuthService(store, store, cfg.JWTSecret, cfg.AdminTokenTTL)
	app := NewApp(cfg.AllowedOrigin, authService)
	app.SetupNotFoundHandler()
	app.SetupRoutes(InitRoutes(Services{
		Auth:        authService,
		Events:      services.NewEventService(store, store),
		Ledger:      services.NewLedgerService(store, publisher, cfg.LedgerLockTimeout),
		Seed:        services.NewSeedService(store, cfg.SeedAdminEmail, cfg.SeedAdminPassword),
		Health:      store,
		SeedEnabled: cfg.SeedEnabled(),
	}))

	if helpers.IsLambda() {
		adapter := gorillamux.NewV2(app.Router)
		lambda.Start(func(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
			if request.Headers == nil {
				request.Headers = map[string]string{}
			}
			if _, ok := request.Headers["x-request-id"]; !ok {
				request.Headers["x-request-id"] = request.RequestContext.RequestID
			}
			return adapter.ProxyWithContext(ctx, request)
		})
		return
	}

	if err := serve(cfg, app.Router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
