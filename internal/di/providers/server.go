package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/samber/do/v2"

	"github.com/comitanigiacomo/dailypulse/internal/adapters/auth"
	adapterHTTP "github.com/comitanigiacomo/dailypulse/internal/adapters/handler/http"
	"github.com/comitanigiacomo/dailypulse/internal/config"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
	"github.com/comitanigiacomo/dailypulse/internal/validation"
)

func ProvideRouter(i do.Injector) (*gin.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*log.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)
	db := do.MustInvoke[*DatabaseHandle](i)
	rdb := do.MustInvoke[*RedisHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	habits := do.MustInvoke[*usecases.HabitsUseCases](i)
	posts := do.MustInvoke[*usecases.PostsUseCases](i)
	users := do.MustInvoke[*usecases.UserUseCases](i)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:  adapterHTTP.NewAuthHandler(users, v),
		HabitHandler: adapterHTTP.NewHabitHandler(habits, v, logger),
		PostHandler:  adapterHTTP.NewPostHandler(posts, habits.GetHabitDetails, v),
		MediaHandler: adapterHTTP.NewMediaHandler(posts.UploadImage),
		Tokens:       tokens,
		DB:           db.DB,
		Redis:        rdb.Client,
		RateLimit:    cfg.RateLimit,
		RateWindow:   cfg.RateWindow,
		Logger:       logger,
		StartTime:    time.Now(),
	}), nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer builds the server and starts listening in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*log.Logger](i)
	router := do.MustInvoke[*gin.Engine](i)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("DailyPulse running", "addr", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("critical server error", "err", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
