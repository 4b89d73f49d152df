package bootstrap

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	authapp "github.com/unitynest/nest-backend/internal/application/auth"
	paymentapp "github.com/unitynest/nest-backend/internal/application/payment"
	app "github.com/unitynest/nest-backend/internal/application/user"
	"github.com/unitynest/nest-backend/internal/infrastructure/repository"
	httpecho "github.com/unitynest/nest-backend/internal/interfaces/http/echo"
)

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 1 << 20

func NewHTTPServer(a *App) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.Validator = httpecho.NewRequestValidator()

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("%s %s %d %s id=%s err=%v", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
				return nil
			}
			log.Printf("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	server.Use(middleware.BodyLimit(fmt.Sprintf("%dK", (a.Config.ImportMaxFileBytes+multipartOverhead)>>10)))

	userQueryRepo := repository.NewUserQueryRepository(a.DB)
	paymentRepo := repository.NewPaymentRepository(a.DB)
	batchRepo := repository.NewImportBatchRepository(a.DB)

	handlers := httpecho.Handlers{
		Auth: httpecho.NewAuthHandler(authapp.NewLogin(userQueryRepo, a.Hasher, a.Tokens)),
		Import: httpecho.NewImportHandler(
			a.ImportUsers(),
			app.NewListImportBatches(batchRepo),
			a.Config.ImportMaxFileBytes,
		),
		User: httpecho.NewUserHandler(app.NewGetUserByID(userQueryRepo)),
		Payment: httpecho.NewPaymentHandler(
			paymentapp.NewSubmitPayment(paymentRepo, nil),
			paymentapp.NewListPayments(paymentRepo),
			paymentapp.NewReviewPayment(paymentRepo, nil),
		),
	}
	httpecho.RegisterRoutes(server, a.Tokens, handlers)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server
}
