package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	identityapp "github.com/tripshare/backend/internal/application/identity"
	reviewapp "github.com/tripshare/backend/internal/application/review"
	tripapp "github.com/tripshare/backend/internal/application/trip"
	"github.com/tripshare/backend/internal/infrastructure/auth"
	"github.com/tripshare/backend/internal/infrastructure/persistence"
	"github.com/tripshare/backend/internal/infrastructure/persistence/models"
	"github.com/tripshare/backend/internal/interfaces/http/middleware"
	"github.com/tripshare/backend/internal/interfaces/http/router"
)

// newTestAPI wires the full HTTP stack against an in-memory database,
// mirroring the server wiring.
func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.TripModel{},
		&models.ParticipationModel{},
		&models.ReviewModel{},
	))

	log := zap.NewNop()
	userRepo := persistence.NewGormUserRepository(db)
	tripRepo := persistence.NewGormTripRepository(db)
	reviewRepo := persistence.NewGormReviewRepository(db)

	jwtService := auth.NewJWTService("test-secret", time.Hour, "tripshare-test")
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, tripRepo, reviewRepo, log)
	tripService := tripapp.NewTripService(tripRepo, reviewRepo, log)
	reviewService := reviewapp.NewReviewService(reviewRepo, tripRepo, log)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	tripHandler := NewTripHandler(tripService)
	reviewHandler := NewReviewHandler(reviewService)

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())

	authRequired := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.NewDomainGroup("auth", "/auth").
		POST("/register", authHandler.Register).
		POST("/login", authHandler.Login).
		GET("/me", authRequired, authHandler.Me))
	r.Register(router.NewDomainGroup("trips", "/trips").
		GET("", tripHandler.List).
		GET("/:id", tripHandler.Get).
		POST("", authRequired, tripHandler.Create).
		PUT("/:id", authRequired, tripHandler.Update).
		PUT("/:id/cancel", authRequired, tripHandler.Cancel).
		PUT("/:id/conclude", authRequired, tripHandler.Conclude).
		POST("/:id/join", authRequired, tripHandler.Join).
		POST("/:id/leave", authRequired, tripHandler.Leave).
		DELETE("/:id/participants/:userId", authRequired, tripHandler.RemoveParticipant).
		POST("/:id/reviews", authRequired, reviewHandler.Create))
	r.Register(router.NewDomainGroup("users", "/users").
		GET("/my-trips", authRequired, userHandler.MyTrips).
		GET("/:id/profile", authRequired, userHandler.GetProfile).
		PUT("/:id", authRequired, userHandler.UpdateProfile))
	r.Setup()

	return engine
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func decodeData(t *testing.T, resp apiResponse, out any) {
	t.Helper()
	require.NotNil(t, resp.Data)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

type authPayload struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Mantra   string `json:"mantra"`
	} `json:"user"`
}

func registerUser(t *testing.T, engine *gin.Engine, username string) authPayload {
	t.Helper()
	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"password": "hunter42",
		"mantra":   "collect moments, not things",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var payload authPayload
	decodeData(t, resp, &payload)
	require.NotEmpty(t, payload.Token)
	return payload
}

type tripPayload struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Status           string `json:"status"`
	CoverPhoto       string `json:"coverPhoto"`
	HostID           string `json:"hostId"`
	MaxParticipants  int    `json:"maxParticipants"`
	ParticipantCount int    `json:"participantCount"`
	Host             struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"host"`
	Participants []struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"participants"`
	Reviews []struct {
		ID     string `json:"id"`
		Rating int    `json:"rating"`
	} `json:"reviews"`
}

func createTrip(t *testing.T, engine *gin.Engine, token string, maxParticipants int) tripPayload {
	t.Helper()
	start := time.Now().AddDate(0, 2, 0).UTC().Truncate(time.Second)
	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/trips", token, gin.H{
		"title":           "Coastal hike",
		"description":     "A week on the coast path",
		"destination":     "Cornwall",
		"startDate":       start.Format(time.RFC3339),
		"endDate":         start.AddDate(0, 0, 7).Format(time.RFC3339),
		"minParticipants": 1,
		"maxParticipants": maxParticipants,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var payload tripPayload
	decodeData(t, resp, &payload)
	return payload
}

func getTripDetail(t *testing.T, engine *gin.Engine, tripID string) tripPayload {
	t.Helper()
	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/trips/"+tripID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload tripPayload
	decodeData(t, resp, &payload)
	return payload
}

func TestAuthEndpoints(t *testing.T) {
	engine := newTestAPI(t)

	t.Run("register and login", func(t *testing.T) {
		created := registerUser(t, engine, "nomad")
		assert.Equal(t, "nomad", created.User.Username)
		assert.Equal(t, "collect moments, not things", created.User.Mantra)

		w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "nomad",
			"password": "hunter42",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var payload authPayload
		decodeData(t, resp, &payload)
		assert.NotEmpty(t, payload.Token)
		assert.Equal(t, created.User.ID, payload.User.ID)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		registerUser(t, engine, "dupe")
		w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username": "dupe",
			"password": "hunter42",
			"mantra":   "again",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_ALREADY_EXISTS", resp.Error.Code)
	})

	t.Run("short username fails validation with field details", func(t *testing.T) {
		w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username": "ab",
			"password": "hunter42",
			"mantra":   "too short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_VALIDATION", resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "username", resp.Error.Details[0].Field)
	})

	t.Run("wrong password yields the generic credentials error", func(t *testing.T) {
		registerUser(t, engine, "cautious")
		w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "cautious",
			"password": "not-the-one",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_UNAUTHORIZED", resp.Error.Code)
	})

	t.Run("me requires a valid token", func(t *testing.T) {
		account := registerUser(t, engine, "selfie")

		w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/auth/me", account.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var payload authPayload
		require.NoError(t, json.Unmarshal(resp.Data, &payload.User))
		assert.Equal(t, "selfie", payload.User.Username)

		w, resp = doRequest(t, engine, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_UNAUTHORIZED", resp.Error.Code)

		w, resp = doRequest(t, engine, http.MethodGet, "/api/v1/auth/me", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_TOKEN_INVALID", resp.Error.Code)
	})
}

func TestTripEndpoints(t *testing.T) {
	t.Run("create requires authentication", func(t *testing.T) {
		engine := newTestAPI(t)
		w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/trips", "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create lists the host as first participant", func(t *testing.T) {
		engine := newTestAPI(t)
		host := registerUser(t, engine, "host")
		created := createTrip(t, engine, host.Token, 4)
		assert.Equal(t, "Upcoming", created.Status)
		assert.Equal(t, host.User.ID, created.HostID)
		assert.Equal(t, "/images/default-cover.png", created.CoverPhoto)

		detail := getTripDetail(t, engine, created.ID)
		assert.Equal(t, 1, detail.ParticipantCount)
		assert.Equal(t, "host", detail.Host.Username)

		w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/trips", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var list []tripPayload
		decodeData(t, resp, &list)
		require.Len(t, list, 1)
		assert.Equal(t, 1, list[0].ParticipantCount)
	})

	t.Run("join saturates capacity and flips status", func(t *testing.T) {
		engine := newTestAPI(t)
		host := registerUser(t, engine, "host")
		guest := registerUser(t, engine, "guest")
		late := registerUser(t, engine, "latecomer")
		created := createTrip(t, engine, host.Token, 2)

		w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/trips/"+created.ID+"/join", guest.Token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "Full", getTripDetail(t, engine, created.ID).Status)

		w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/trips/"+created.ID+"/join", late.Token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_INVALID_STATE", resp.Error.Code)

		w, resp = doRequest(t, engine, http.MethodPost, "/api/v1/trips/"+created.ID+"/leave", guest.Token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "Upcoming", getTripDetail(t, engine, created.ID).Status)
	})

	t.Run("host cannot join or leave their own trip", func(t *testing.T) {
		engine := newTestAPI(t)
		host := registerUser(t, engine, "host")
		created := createTrip(t, engine, host.Token, 4)

		w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/trips/"+created.ID+"/join", host.Token, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_CONFLICT", resp.Error.Code)

		w, resp = doRequest(t, engine, http.MethodPost, "/api/v1/trips/"+created.ID+"/leave", host.Token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_FORBIDDEN", resp.Error.Code)
	})

	t.Run("only the host can edit", func(t *testing.T) {
		engine := newTestAPI(t)
		host := registerUser(t, engine, "host")
		other := registerUser(t, engine, "other")
		created := createTrip(t, engine, host.Token, 4)

		w, resp := doRequest(t, engine, http.MethodPut, "/api/v1/trips/"+created.ID, other.Token, gin.H{
			"title": "Hijacked",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_FORBIDDEN", resp.Error.Code)

		w, resp = doRequest(t, engine, http.MethodPut, "/api/v1/trips/"+created.ID, host.Token, gin.H{
			"title": "Coastal hike, extended",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		var payload tripPayload
		decodeData(t, resp, &payload)
		assert.Equal(t, "Coastal hike, extended", payload.Title)
		assert.Equal(t, "Upcoming", payload.Status)
	})

	t.Run("conclude is host-only and final", func(t *testing.T) {
		engine := newTestAPI(t)
		host := registerUser(t, engine, "host")
		created := createTrip(t, engine, host.Token, 4)

		w, resp := doRequest(t, engine, http.MethodPut, "/api/v1/trips/"+created.ID+"/conclude", host.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var payload tripPayload
		decodeData(t, resp, &payload)
		assert.Equal(t, "Concluded", payload.Status)

		w, resp = doRequest(t, engine, http.MethodPut, "/api/v1/trips/"+created.ID+"/conclude", host.Token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_INVALID_STATE", resp.Error.Code)
	})

	t.Run("host removes a participant", func(t *testing.T) {
		engine := newTestAPI(t)
		host := registerUser(t, engine, "host")
		guest := registerUser(t, engine, "guest")
		created := createTrip(t, engine, host.Token, 4)

		w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/trips/"+created.ID+"/join", guest.Token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		path := fmt.Sprintf("/api/v1/trips/%s/participants/%s", created.ID, guest.User.ID)
		w, resp := doRequest(t, engine, http.MethodDelete, path, guest.Token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)

		w, _ = doRequest(t, engine, http.MethodDelete, path, host.Token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 1, getTripDetail(t, engine, created.ID).ParticipantCount)
	})

	t.Run("unknown trip returns not found", func(t *testing.T) {
		engine := newTestAPI(t)
		w, resp := doRequest(t, engine, http.MethodGet,
			"/api/v1/trips/00000000-0000-0000-0000-000000000099", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_NOT_FOUND", resp.Error.Code)
	})

	t.Run("malformed trip id fails binding", func(t *testing.T) {
		engine := newTestAPI(t)
		w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/trips/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
	})
}

func TestReviewEndpoints(t *testing.T) {
	engine := newTestAPI(t)
	host := registerUser(t, engine, "host")
	guest := registerUser(t, engine, "guest")
	outsider := registerUser(t, engine, "outsider")
	created := createTrip(t, engine, host.Token, 4)

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/trips/"+created.ID+"/join", guest.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	reviewsPath := "/api/v1/trips/" + created.ID + "/reviews"
	review := gin.H{"rating": 5, "comment": "Stunning views the whole week"}

	t.Run("rejected before the trip concludes", func(t *testing.T) {
		w, resp := doRequest(t, engine, http.MethodPost, reviewsPath, guest.Token, review)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_INVALID_STATE", resp.Error.Code)
	})

	w, _ = doRequest(t, engine, http.MethodPut, "/api/v1/trips/"+created.ID+"/conclude", host.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("participant reviews a concluded trip once", func(t *testing.T) {
		w, resp := doRequest(t, engine, http.MethodPost, reviewsPath, guest.Token, review)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, resp.Success)

		w, resp = doRequest(t, engine, http.MethodPost, reviewsPath, guest.Token, review)
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_CONFLICT", resp.Error.Code)
	})

	t.Run("non-participants cannot review", func(t *testing.T) {
		w, resp := doRequest(t, engine, http.MethodPost, reviewsPath, outsider.Token, review)
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_FORBIDDEN", resp.Error.Code)
	})

	t.Run("rating outside 1..5 fails validation", func(t *testing.T) {
		w, resp := doRequest(t, engine, http.MethodPost, reviewsPath, host.Token, gin.H{
			"rating":  6,
			"comment": "off the scale",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_VALIDATION", resp.Error.Code)
	})

	t.Run("detail includes reviews with authors", func(t *testing.T) {
		detail := getTripDetail(t, engine, created.ID)
		require.Len(t, detail.Reviews, 1)
		assert.Equal(t, 5, detail.Reviews[0].Rating)
	})
}

func TestUserEndpoints(t *testing.T) {
	engine := newTestAPI(t)
	host := registerUser(t, engine, "host")
	guest := registerUser(t, engine, "guest")
	hosted := createTrip(t, engine, host.Token, 4)

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/trips/"+hosted.ID+"/join", guest.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	t.Run("my-trips includes hosted and joined trips", func(t *testing.T) {
		w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/users/my-trips", guest.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var list []tripPayload
		decodeData(t, resp, &list)
		require.Len(t, list, 1)
		assert.Equal(t, hosted.ID, list[0].ID)

		w, resp = doRequest(t, engine, http.MethodGet, "/api/v1/users/my-trips", host.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		decodeData(t, resp, &list)
		require.Len(t, list, 1)
	})

	t.Run("profiles are private to their owner", func(t *testing.T) {
		w, resp := doRequest(t, engine, http.MethodGet,
			"/api/v1/users/"+host.User.ID+"/profile", guest.Token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_FORBIDDEN", resp.Error.Code)

		w, resp = doRequest(t, engine, http.MethodGet,
			"/api/v1/users/"+host.User.ID+"/profile", host.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var profile struct {
			User struct {
				Username string `json:"username"`
			} `json:"user"`
			HostedTrips []tripPayload `json:"hostedTrips"`
			JoinedTrips []tripPayload `json:"joinedTrips"`
		}
		decodeData(t, resp, &profile)
		assert.Equal(t, "host", profile.User.Username)
		require.Len(t, profile.HostedTrips, 1)
		assert.Empty(t, profile.JoinedTrips)
	})

	t.Run("profile edit is self-only", func(t *testing.T) {
		w, resp := doRequest(t, engine, http.MethodPut,
			"/api/v1/users/"+host.User.ID, guest.Token, gin.H{"mantra": "mine now"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)

		w, resp = doRequest(t, engine, http.MethodPut,
			"/api/v1/users/"+guest.User.ID, guest.Token, gin.H{"mantra": "leave only footprints"})
		assert.Equal(t, http.StatusOK, w.Code)
		var user struct {
			Mantra string `json:"mantra"`
		}
		decodeData(t, resp, &user)
		assert.Equal(t, "leave only footprints", user.Mantra)
	})
}
