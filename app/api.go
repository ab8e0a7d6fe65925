package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/svetov/steamwatch/config"
	"github.com/svetov/steamwatch/lib"
	"github.com/svetov/steamwatch/lib/steam"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewAPI(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, svc *lib.Service) *http.Server {
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	srv := &http.Server{Addr: addr, Handler: router(cfg, log, svc)}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go srv.ListenAndServe()
			return nil
		},
		OnStop: srv.Shutdown,
	})

	return srv
}

func router(cfg *config.Config, log *zap.Logger, svc *lib.Service) http.Handler {
	ctrl := &controller{log, svc}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		if creds := cfg.GetCreds(); len(creds) > 0 {
			r.Use(middleware.BasicAuth("steamwatch", creds))
		} else {
			log.Sugar().Info("Auth is disabled since no credentials are defined")
		}

		r.Route("/subscribers/{subscriber_id}", func(r chi.Router) {
			r.Post("/subscriptions", ctrl.track)
			r.Get("/subscriptions", ctrl.list)
			r.Delete("/subscriptions/{app_id}", ctrl.untrack)
			r.Post("/check", ctrl.checkNow)
		})
	})

	return r
}

type controller struct {
	log *zap.Logger
	svc *lib.Service
}

func (ctrl *controller) reject(w http.ResponseWriter, status int, err error) {
	if err != nil {
		http.Error(w, err.Error(), status)
	} else {
		w.WriteHeader(status)
	}
}

func (ctrl *controller) resolve(w http.ResponseWriter, status int, body any) {
	if b, err := json.Marshal(body); err != nil {
		ctrl.reject(w, http.StatusInternalServerError, err)
		ctrl.log.Sugar().Errorw("Request failed", "error", err)
		return
	} else {
		w.WriteHeader(status)
		if b != nil {
			w.Write(b)
		}
	}
}

func (ctrl *controller) track(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subscriberID, err := parseID(chi.URLParam(r, "subscriber_id"))
	if err != nil {
		ctrl.reject(w, 400, err)
		return
	}

	link := r.FormValue("link")
	if link == "" {
		ctrl.reject(w, 400, errors.New("Link is required"))
		return
	}

	sub, err := ctrl.svc.Track(ctx, subscriberID, link)
	switch {
	case errors.Is(err, steam.ErrNoAppID):
		ctrl.reject(w, 400, err)
		return
	case errors.Is(err, steam.ErrAppNotFound):
		ctrl.reject(w, 404, err)
		return
	case err != nil:
		ctrl.reject(w, 500, err)
		return
	}
	ctrl.resolve(w, http.StatusCreated, SubscriptionView{}.From(*sub))
}

func (ctrl *controller) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subscriberID, err := parseID(chi.URLParam(r, "subscriber_id"))
	if err != nil {
		ctrl.reject(w, 400, err)
		return
	}

	subs, err := ctrl.svc.List(ctx, subscriberID)
	if err != nil {
		ctrl.reject(w, 500, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, FromMany[SubscriptionView](subs))
}

func (ctrl *controller) untrack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subscriberID, err := parseID(chi.URLParam(r, "subscriber_id"))
	if err != nil {
		ctrl.reject(w, 400, err)
		return
	}
	appID, err := parseID(chi.URLParam(r, "app_id"))
	if err != nil {
		ctrl.reject(w, 400, err)
		return
	}

	found, err := ctrl.svc.Untrack(ctx, subscriberID, appID)
	if err != nil {
		ctrl.reject(w, 500, err)
		return
	}
	if !found {
		ctrl.reject(w, 404, errors.New("subscription not found"))
		return
	}
	ctrl.resolve(w, http.StatusOK, map[string]any{"removed": true})
}

func (ctrl *controller) checkNow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subscriberID, err := parseID(chi.URLParam(r, "subscriber_id"))
	if err != nil {
		ctrl.reject(w, 400, err)
		return
	}

	if err := ctrl.svc.CheckNow(ctx, subscriberID); err != nil {
		ctrl.reject(w, 500, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, map[string]any{"checked": true})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id '%s'", s)
	}
	return id, nil
}
