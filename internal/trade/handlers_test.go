package trade

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ksred/barter-api/internal/types"
	"github.com/ksred/barter-api/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asParticipant injects the claims the JWT middleware would set.
func asParticipant(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("claims", jwt.MapClaims{"participant_id": float64(id)})
		c.Next()
	}
}

func setupTestRouter(env *testEnv, participant uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := NewGinHandlers(env.service)

	v1 := router.Group("/api/v1", asParticipant(participant))
	{
		v1.POST("/listings", handlers.CreateListingHandler())
		v1.GET("/listings", handlers.OpenListingsHandler())
		v1.GET("/listings/:listing_id", handlers.GetListingHandler())
		v1.PUT("/listings/:listing_id/status", handlers.SetListingStatusHandler())
		v1.POST("/listings/:listing_id/offers", handlers.SubmitOfferHandler())
		v1.PUT("/offers/:offer_id/resolve", handlers.ResolveOfferHandler())
	}
	return router
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *response.Error `json:"error"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, payload interface{}) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestCreateListingHandler(t *testing.T) {
	env := newTestEnv()
	router := setupTestRouter(env, 1)

	w, envelope := doRequest(t, router, "POST", "/api/v1/listings", gin.H{
		"offered": []uint{1},
		"wanted":  []uint{2},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	require.True(t, envelope.Success)

	var listing types.Listing
	require.NoError(t, json.Unmarshal(envelope.Data, &listing))
	assert.Equal(t, uint(1), listing.ID)
	assert.Equal(t, types.ListingStatusOpen, listing.Status)
}

func TestCreateListingHandlerUnknownStrategy(t *testing.T) {
	env := newTestEnv()
	router := setupTestRouter(env, 1)

	w, envelope := doRequest(t, router, "POST", "/api/v1/listings", gin.H{
		"offered":    []uint{1},
		"wanted":     []uint{2},
		"validation": "lenient",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeValidationFailed, envelope.Error.Code)
}

func TestCreateListingHandlerStrategyRejection(t *testing.T) {
	env := newTestEnv()
	router := setupTestRouter(env, 1)

	// Item 1 is below the high-value rarity floor
	w, envelope := doRequest(t, router, "POST", "/api/v1/listings", gin.H{
		"offered":    []uint{1},
		"wanted":     []uint{4},
		"validation": StrategyHighValue,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeValidationFailed, envelope.Error.Code)
}

func TestGetListingHandlerNotFound(t *testing.T) {
	env := newTestEnv()
	router := setupTestRouter(env, 1)

	w, envelope := doRequest(t, router, "GET", "/api/v1/listings/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeNotFound, envelope.Error.Code)
}

func TestGetListingHandlerBadParam(t *testing.T) {
	env := newTestEnv()
	router := setupTestRouter(env, 1)

	w, envelope := doRequest(t, router, "GET", "/api/v1/listings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeBadRequest, envelope.Error.Code)
}

func TestResolveOfferHandlerConflict(t *testing.T) {
	env := newTestEnv()
	listing, err := env.service.CreateListing(1, types.ItemRefs{1}, types.ItemRefs{2}, nil)
	require.NoError(t, err)
	offer, err := env.service.SubmitOffer(listing.ID, 2, simplePayload(2))
	require.NoError(t, err)

	router := setupTestRouter(env, 1)
	path := fmt.Sprintf("/api/v1/offers/%d/resolve", offer.ID)

	w, envelope := doRequest(t, router, "PUT", path, gin.H{"accept": true})
	assert.Equal(t, http.StatusOK, w.Code)
	var resolved types.CounterOffer
	require.NoError(t, json.Unmarshal(envelope.Data, &resolved))
	assert.Equal(t, types.OfferStatusAccepted, resolved.Status)

	// The offer is terminal now
	w, envelope = doRequest(t, router, "PUT", path, gin.H{"accept": false})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeStateConflict, envelope.Error.Code)
}

func TestResolveOfferHandlerMissingAccept(t *testing.T) {
	env := newTestEnv()
	router := setupTestRouter(env, 1)

	// The accept field is required, not defaulted
	w, envelope := doRequest(t, router, "PUT", "/api/v1/offers/1/resolve", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeBadRequest, envelope.Error.Code)
}

func TestResolveOfferHandlerDataIntegrity(t *testing.T) {
	env := newTestEnv()
	offer := &types.CounterOffer{ListingID: 42, ProposerID: 2, Status: types.OfferStatusPending}
	require.NoError(t, env.offers.Save(offer))

	router := setupTestRouter(env, 1)
	path := fmt.Sprintf("/api/v1/offers/%d/resolve", offer.ID)

	w, envelope := doRequest(t, router, "PUT", path, gin.H{"accept": true})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeDataIntegrity, envelope.Error.Code)
}

func TestSubmitOfferHandler(t *testing.T) {
	env := newTestEnv()
	listing, err := env.service.CreateListing(1, types.ItemRefs{1}, types.ItemRefs{2}, nil)
	require.NoError(t, err)

	router := setupTestRouter(env, 2)
	path := fmt.Sprintf("/api/v1/listings/%d/offers", listing.ID)

	w, envelope := doRequest(t, router, "POST", path, gin.H{
		"payload_type":   types.PayloadBonus,
		"offered":        []uint{2},
		"bonus_item":     "Berry Bundle",
		"bonus_quantity": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var offer types.CounterOffer
	require.NoError(t, json.Unmarshal(envelope.Data, &offer))
	assert.Equal(t, types.OfferStatusPending, offer.Status)
	assert.Equal(t, types.PayloadBonus, offer.PayloadType)
	assert.Equal(t, uint(2), offer.ProposerID)
}

func TestHandlersRequireClaims(t *testing.T) {
	env := newTestEnv()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := NewGinHandlers(env.service)
	router.POST("/api/v1/listings", handlers.CreateListingHandler())

	w, envelope := doRequest(t, router, "POST", "/api/v1/listings", gin.H{
		"offered": []uint{1},
		"wanted":  []uint{2},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeUnauthorized, envelope.Error.Code)
}
