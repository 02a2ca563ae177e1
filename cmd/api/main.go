package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	_ "mealflow/docs"
	"mealflow/pkg/dialogflow"
	"mealflow/pkg/fulfillment"
	"mealflow/pkg/logger"
	"mealflow/pkg/order/postgres"
	"mealflow/pkg/session"
	sessionmem "mealflow/pkg/session/memory"
	sessionredis "mealflow/pkg/session/redis"
	"mealflow/pkg/tracing"
)

var (
	svc            *fulfillment.Service
	intentHandlers map[string]intentHandler
	tracer         trace.Tracer
)

// @title MealFlow Webhook API
// @version 1.0
// @description Webhook backend for the food ordering conversational agent
// @host localhost:8000
// @BasePath /
func main() {
	logger.Init("mealflow")
	defer logger.Sync()
	log := logger.Log

	tp, shutdown, err := tracing.InitTracing(log, tracing.Config{
		ServiceName: "mealflow",
		Host:        os.Getenv("OTEL_HOST"),
		Probability: 1.0,
	})
	if err != nil {
		log.Fatal("init tracing", zap.Error(err))
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer("mealflow")

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	if _, err := db.Exec(postgres.Schema); err != nil {
		log.Fatal("create tables", zap.Error(err))
	}
	repo := postgres.New(db)

	var sessions session.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		sessions = sessionredis.New(redis.NewClient(&redis.Options{Addr: addr}))
		log.Info("sessions backed by redis", zap.String("addr", addr))
	} else {
		sessions = sessionmem.New()
	}

	svc = fulfillment.New(sessions, repo, log)
	intentHandlers = buildIntentHandlers(svc)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	log.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, newRouter()); err != nil {
		log.Error("server closed", zap.Error(err))
	}
}

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(traceMiddleware, requestIDMiddleware, recoverMiddleware)
	r.HandleFunc("/", webhookHandler).Methods(http.MethodPost)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// intentHandler executes one webhook intent for a session.
type intentHandler func(ctx context.Context, p dialogflow.Parameters, sessionID string) (string, error)

// buildIntentHandlers maps the agent's intent display names to their
// handlers. Built once at startup; the supported intent set is fixed.
func buildIntentHandlers(s *fulfillment.Service) map[string]intentHandler {
	return map[string]intentHandler{
		"order.add- context: ongoing-order": func(ctx context.Context, p dialogflow.Parameters, sessionID string) (string, error) {
			return s.AddToOrder(ctx, sessionID, p.FoodItems, p.Quantities())
		},
		"order.remove- context: ongoing-order": func(ctx context.Context, p dialogflow.Parameters, sessionID string) (string, error) {
			return s.RemoveFromOrder(ctx, sessionID, p.FoodItems)
		},
		"order.complete-context: ongoing-order": func(ctx context.Context, p dialogflow.Parameters, sessionID string) (string, error) {
			return s.CompleteOrder(ctx, sessionID)
		},
		"track.order-context: ongoing-tracking": func(ctx context.Context, p dialogflow.Parameters, sessionID string) (string, error) {
			id, err := p.OrderID()
			if err != nil {
				return "", err
			}
			return s.TrackOrder(ctx, id)
		},
	}
}

// webhookHandler handles one Dialogflow webhook event.
// @Summary Handle webhook event
// @Description Dispatches the matched intent to the order fulfillment core
// @Accept json
// @Produce json
// @Param event body dialogflow.WebhookRequest true "Webhook event"
// @Success 200 {object} dialogflow.WebhookResponse
// @Failure 400 {string} string "client input error"
// @Router / [post]
func webhookHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.AddSpan(r.Context(), "webhookHandler")
	defer span.End()

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "empty request body", http.StatusBadRequest)
		return
	}
	var req dialogflow.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	intent := req.QueryResult.Intent.DisplayName
	if intent == "" {
		http.Error(w, "missing intent", http.StatusBadRequest)
		return
	}
	handler, ok := intentHandlers[intent]
	if !ok {
		logger.Log.Warn("unknown intent", zap.String("intent", intent))
		http.Error(w, fmt.Sprintf("Intent %q not found", intent), http.StatusBadRequest)
		return
	}
	sessionID, err := req.SessionID()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, err := handler(ctx, req.QueryResult.Parameters, sessionID)
	if err != nil {
		if errors.Is(err, dialogflow.ErrNoOrderID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Log.Error("handle intent",
			zap.String("intent", intent),
			zap.String("trace_id", tracing.GetTraceID(ctx)),
			zap.Error(err))
		http.Error(w, "an internal error occurred", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dialogflow.WebhookResponse{FulfillmentText: text})
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDMiddleware tags each request with an id for log correlation.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware converts panics into a generic 500 so no failure
// path terminates the process or leaks internal detail.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.Error("panic recovered", zap.Any("panic", rec))
				http.Error(w, "an internal error occurred", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
