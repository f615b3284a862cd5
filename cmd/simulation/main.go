package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ksred/barter-api/internal/auth"
	"github.com/ksred/barter-api/internal/catalog"
	"github.com/ksred/barter-api/internal/database"
	"github.com/ksred/barter-api/internal/notification"
	"github.com/ksred/barter-api/internal/trade"
	"github.com/ksred/barter-api/internal/types"
	"github.com/ksred/barter-api/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	minListings   = 10
	maxListings   = 40
	numWorkers    = 4
	serverAddress = "http://localhost:8080"
	jwtSecret     = "barter-secret-key"

	ownerParticipant    = uint(1)
	proposerParticipant = uint(2)
)

var (
	commonItems = []string{"Oak Figurine", "Brass Compass", "River Stone", "Clay Flute", "Woven Basket"}
	rareItems   = []string{"Silver Locket", "Meteorite Shard", "Ivory Chess Set"}
	bonusItems  = []string{"Berry Bundle", "Spare Twine", "Polished Pebbles"}
)

// errStateConflict marks resolutions rejected because the offer or its
// listing already left the resolvable state.
var errStateConflict = errors.New("state conflict")

// init configures the logger for the simulation with pretty printing and timestamp
func init() {
	// Configure pretty logging
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// routeStats tracks performance statistics for an API endpoint
type routeStats struct {
	name       string
	durations  []time.Duration
	totalCalls int
	failures   int
}

// addDuration records a new duration measurement for the route
func (rs *routeStats) addDuration(d time.Duration) {
	rs.durations = append(rs.durations, d)
	rs.totalCalls++
}

// calculate computes performance statistics from recorded durations
// Returns min, max, mean, median, 95th percentile, and 99th percentile durations
func (rs *routeStats) calculate() (min, max, mean, median, p95, p99 time.Duration) {
	if len(rs.durations) == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	// Sort durations for percentile calculations
	sort.Slice(rs.durations, func(i, j int) bool {
		return rs.durations[i] < rs.durations[j]
	})

	min = rs.durations[0]
	max = rs.durations[len(rs.durations)-1]

	// Calculate mean
	var sum time.Duration
	for _, d := range rs.durations {
		sum += d
	}
	mean = sum / time.Duration(len(rs.durations))

	// Calculate median
	median = rs.durations[len(rs.durations)/2]

	// Calculate percentiles
	p95idx := int(math.Ceil(float64(len(rs.durations))*0.95)) - 1
	p99idx := int(math.Ceil(float64(len(rs.durations))*0.99)) - 1
	p95 = rs.durations[p95idx]
	p99 = rs.durations[p99idx]

	return
}

// simulationClient handles HTTP communication with the barter API on behalf
// of both demo participants. Tokens are keyed by participant ID so the owner
// and the proposer sides of a trade can be driven from one place.
type simulationClient struct {
	baseURL string
	tokens  map[uint]string
	client  *http.Client
	stats   map[string]*routeStats
	mu      sync.Mutex
}

// newSimulationClient creates and initializes a new simulation client
// It authenticates both demo participants and prepares performance tracking
func newSimulationClient() (*simulationClient, error) {
	// Create HTTP client with timeout
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	sc := &simulationClient{
		baseURL: serverAddress,
		tokens:  make(map[uint]string),
		client:  client,
		stats: map[string]*routeStats{
			"auth":          {name: "Authentication"},
			"item":          {name: "Register Item"},
			"create":        {name: "Create Listing"},
			"get":           {name: "Get Listing"},
			"offer":         {name: "Submit Offer"},
			"resolve":       {name: "Resolve Offer"},
			"notifications": {name: "Notifications"},
		},
	}

	credentials := []struct {
		participantID uint
		apiKey        string
		apiSecret     string
	}{
		{ownerParticipant, "trainer-red-key", "trainer-red-secret"},
		{proposerParticipant, "trainer-blue-key", "trainer-blue-secret"},
	}

	for _, creds := range credentials {
		token, err := sc.authenticate(creds.apiKey, creds.apiSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to authenticate participant %d: %w", creds.participantID, err)
		}
		sc.tokens[creds.participantID] = token
	}

	return sc, nil
}

// record stores a duration measurement under a stats key.
func (sc *simulationClient) record(key string, start time.Time) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.stats[key].addDuration(time.Since(start))
}

// authenticate performs API authentication and returns a JWT token
func (sc *simulationClient) authenticate(apiKey, apiSecret string) (string, error) {
	start := time.Now()
	defer sc.record("auth", start)

	credentials := map[string]string{
		"api_key":    apiKey,
		"api_secret": apiSecret,
	}

	body, err := json.Marshal(credentials)
	if err != nil {
		return "", err
	}

	resp, err := sc.client.Post(
		fmt.Sprintf("%s/api/v1/auth/token", sc.baseURL),
		"application/json",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("authentication failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"jwt_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.Token, nil
}

// doJSON sends an authenticated request and decodes the success envelope's
// data field into out. The response status code is always returned so
// callers can classify API-level rejections.
func (sc *simulationClient) doJSON(participantID uint, method, path string, payload, out interface{}) (int, error) {
	var reqBody io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		reqBody = bytes.NewBuffer(body)
	}

	req, err := http.NewRequest(method, sc.baseURL+path, reqBody)
	if err != nil {
		return 0, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", sc.tokens[participantID]))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := sc.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debug().Str("path", path).Str("response", string(respBody)).Msg("API response")

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return resp.StatusCode, fmt.Errorf("%s %s failed with status %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		envelope := struct {
			Success bool        `json:"success"`
			Data    interface{} `json:"data"`
		}{Data: out}
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
		}
	}

	return resp.StatusCode, nil
}

// registerItem adds an item to the catalog for the given participant
// Returns the stored item with its assigned ID
func (sc *simulationClient) registerItem(participantID uint, name, kind string, rarity int) (*types.Item, error) {
	start := time.Now()
	defer sc.record("item", start)

	payload := map[string]interface{}{
		"name":   name,
		"kind":   kind,
		"rarity": rarity,
	}

	var item types.Item
	if _, err := sc.doJSON(participantID, "POST", "/api/v1/items", payload, &item); err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, fmt.Errorf("no item ID in response")
	}

	return &item, nil
}

// createListing opens a new listing for the given participant
// Returns the listing ID on success
func (sc *simulationClient) createListing(participantID uint, offered, wanted types.ItemRefs, validation string) (uint, error) {
	start := time.Now()
	defer sc.record("create", start)

	payload := map[string]interface{}{
		"offered":    offered,
		"wanted":     wanted,
		"validation": validation,
	}

	var listing types.Listing
	if _, err := sc.doJSON(participantID, "POST", "/api/v1/listings", payload, &listing); err != nil {
		return 0, err
	}
	if listing.ID == 0 {
		return 0, fmt.Errorf("no listing ID in response")
	}

	return listing.ID, nil
}

// getListing retrieves the current state of a listing
func (sc *simulationClient) getListing(participantID, listingID uint) (*types.Listing, error) {
	start := time.Now()
	defer sc.record("get", start)

	var listing types.Listing
	path := fmt.Sprintf("/api/v1/listings/%d", listingID)
	if _, err := sc.doJSON(participantID, "GET", path, nil, &listing); err != nil {
		return nil, err
	}

	return &listing, nil
}

// submitOffer submits a counter-offer against a listing
// Returns the stored offer on success
func (sc *simulationClient) submitOffer(participantID, listingID uint, payloadType string, offered types.ItemRefs, bonusItem string, bonusQuantity int) (*types.CounterOffer, error) {
	start := time.Now()
	defer sc.record("offer", start)

	payload := map[string]interface{}{
		"payload_type":   payloadType,
		"offered":        offered,
		"bonus_item":     bonusItem,
		"bonus_quantity": bonusQuantity,
	}

	var offer types.CounterOffer
	path := fmt.Sprintf("/api/v1/listings/%d/offers", listingID)
	if _, err := sc.doJSON(participantID, "POST", path, payload, &offer); err != nil {
		return nil, err
	}
	if offer.ID == 0 {
		return nil, fmt.Errorf("no offer ID in response")
	}

	return &offer, nil
}

// resolveOffer accepts or rejects a pending counter-offer
// A 409 response is reported as errStateConflict
func (sc *simulationClient) resolveOffer(participantID, offerID uint, accept bool) (*types.CounterOffer, error) {
	start := time.Now()
	defer sc.record("resolve", start)

	payload := map[string]interface{}{
		"accept": accept,
	}

	var offer types.CounterOffer
	path := fmt.Sprintf("/api/v1/offers/%d/resolve", offerID)
	status, err := sc.doJSON(participantID, "PUT", path, payload, &offer)
	if err != nil {
		if status == http.StatusConflict {
			return nil, fmt.Errorf("%w: offer %d", errStateConflict, offerID)
		}
		return nil, err
	}

	return &offer, nil
}

// getNotifications retrieves all notifications for a participant
func (sc *simulationClient) getNotifications(participantID uint) ([]types.Notification, error) {
	start := time.Now()
	defer sc.record("notifications", start)

	var notifications []types.Notification
	if _, err := sc.doJSON(participantID, "GET", "/api/v1/notifications", nil, &notifications); err != nil {
		return nil, err
	}

	return notifications, nil
}

// printPerformanceStats outputs formatted performance statistics for all API endpoints
func (sc *simulationClient) printPerformanceStats() {
	fmt.Println("\n📊 API Performance Statistics")
	fmt.Println(strings.Repeat("-", 100))
	fmt.Printf("%-20s %10s %10s %10s %10s %10s %10s %10s %10s\n",
		"Endpoint", "Calls", "Errors", "Min", "Max", "Mean", "Median", "P95", "P99")
	fmt.Println(strings.Repeat("-", 100))

	for _, stats := range sc.stats {
		min, max, mean, median, p95, p99 := stats.calculate()
		fmt.Printf("%-20s %10d %10d %10s %10s %10s %10s %10s %10s\n",
			stats.name,
			stats.totalCalls,
			stats.failures,
			min.Round(time.Millisecond),
			max.Round(time.Millisecond),
			mean.Round(time.Millisecond),
			median.Round(time.Millisecond),
			p95.Round(time.Millisecond),
			p99.Round(time.Millisecond))
	}
	fmt.Println(strings.Repeat("-", 100))
}

// main runs the barter marketplace simulation
// It starts a local API server and drives the full listing lifecycle: two
// participants register items, one opens listings, the other counters, and
// the owner resolves the offers
func main() {
	// Start the server in a goroutine
	go func() {
		if err := startServer(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for server to start
	time.Sleep(2 * time.Second)

	// Initialize simulation client
	simClient, err := newSimulationClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize simulation client")
	}

	// Seed the item catalog for both participants
	ownerCommon, ownerRare, err := seedCatalog(simClient, ownerParticipant)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed owner catalog")
	}
	proposerCommon, proposerRare, err := seedCatalog(simClient, proposerParticipant)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed proposer catalog")
	}

	// Generate random number of listings to process
	targetListings := rand.Intn(maxListings-minListings) + minListings
	log.Info().Int("target_listings", targetListings).Msg("Starting simulation")

	// Channel to collect listing IDs
	listingsChan := make(chan uint, targetListings)
	var wg sync.WaitGroup

	// Start worker goroutines
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			createListingsHTTP(workerID, targetListings/numWorkers, simClient, ownerCommon, ownerRare, proposerCommon, proposerRare, listingsChan)
		}(i)
	}

	// Wait for all listings to be created
	wg.Wait()
	close(listingsChan)

	// Collect all listing IDs
	var listingIDs []uint
	for listingID := range listingsChan {
		listingIDs = append(listingIDs, listingID)
	}

	log.Info().Int("listings_created", len(listingIDs)).Msg("All listings created")

	// Collect statistics during processing
	stats := struct {
		TotalListings     int
		OffersSubmitted   int
		Accepted          int
		Rejected          int
		Conflicts         int
		FailedOffers      int
		FailedResolutions int
		StartTime         time.Time
		Payloads          map[string]int
		Outcomes          map[string]int
	}{
		StartTime: time.Now(),
		Payloads:  make(map[string]int),
		Outcomes:  make(map[string]int),
	}

	stats.TotalListings = len(listingIDs)

	// Counter the listings: one or two offers each, then resolve in order.
	// Once an offer is accepted the listing completes, so a second accept on
	// the same listing must come back as a conflict.
	for _, listingID := range listingIDs {
		numOffers := rand.Intn(2) + 1
		var offerIDs []uint

		for i := 0; i < numOffers; i++ {
			payloadType := types.PayloadSimple
			bonusItem := ""
			bonusQuantity := 0
			if rand.Intn(100) < 35 {
				payloadType = types.PayloadBonus
				bonusItem = bonusItems[rand.Intn(len(bonusItems))]
				bonusQuantity = rand.Intn(3) + 1
			}

			offered := pickRefs(proposerCommon, rand.Intn(2)+1)
			offer, err := simClient.submitOffer(proposerParticipant, listingID, payloadType, offered, bonusItem, bonusQuantity)
			if err != nil {
				log.Error().Err(err).Uint("listing_id", listingID).Msg("Failed to submit offer")
				stats.FailedOffers++
				continue
			}
			offerIDs = append(offerIDs, offer.ID)
			stats.OffersSubmitted++
			stats.Payloads[payloadType]++

			log.Info().
				Uint("listing_id", listingID).
				Uint("offer_id", offer.ID).
				Str("payload_type", payloadType).
				Msg("Offer submitted")
		}

		for _, offerID := range offerIDs {
			accept := rand.Intn(100) < 60
			resolved, err := simClient.resolveOffer(ownerParticipant, offerID, accept)
			if err != nil {
				if errors.Is(err, errStateConflict) {
					stats.Conflicts++
					log.Info().Uint("offer_id", offerID).Msg("Resolution conflicted with completed listing")
					continue
				}
				log.Error().Err(err).Uint("offer_id", offerID).Msg("Failed to resolve offer")
				stats.FailedResolutions++
				continue
			}

			switch resolved.Status {
			case types.OfferStatusAccepted:
				stats.Accepted++
			case types.OfferStatusRejected:
				stats.Rejected++
			}
			stats.Outcomes[resolved.Status]++

			log.Info().
				Uint("offer_id", offerID).
				Str("status", resolved.Status).
				Msg("Offer resolved")
		}

		// Spot-check the listing after resolution
		listing, err := simClient.getListing(ownerParticipant, listingID)
		if err == nil {
			log.Debug().
				Uint("listing_id", listingID).
				Str("status", listing.Status).
				Msg("Listing state after resolution")
		}
	}

	// Each side checks its inbox
	ownerInbox, err := simClient.getNotifications(ownerParticipant)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch owner notifications")
	}
	proposerInbox, err := simClient.getNotifications(proposerParticipant)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch proposer notifications")
	}

	// Print summary
	duration := time.Since(stats.StartTime)
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("🔄 BARTER SIMULATION SUMMARY")
	fmt.Println(strings.Repeat("=", 80))

	fmt.Printf(`
📊 Trade Statistics
------------------
Total Listings:    %d
Offers Submitted:  %d
Accepted:          %d
Rejected:          %d
Conflicts:         %d
Failed Offers:     %d
Failed Resolutions:%d
Owner Inbox:       %d
Proposer Inbox:    %d
Duration:          %v

📈 Payload Distribution
--------------------
`, stats.TotalListings, stats.OffersSubmitted, stats.Accepted, stats.Rejected,
		stats.Conflicts, stats.FailedOffers, stats.FailedResolutions,
		len(ownerInbox), len(proposerInbox), duration.Round(time.Millisecond))

	// Print payload distribution with simple ASCII bar chart
	maxPayloadCount := 0
	for _, count := range stats.Payloads {
		if count > maxPayloadCount {
			maxPayloadCount = count
		}
	}

	for payloadType, count := range stats.Payloads {
		barLength := int(float64(count) / float64(maxPayloadCount) * 20)
		bar := strings.Repeat("█", barLength)
		fmt.Printf("%-8s: %s (%d)\n", payloadType, bar, count)
	}

	fmt.Println("\n📉 Outcome Distribution")
	fmt.Println("------------------")
	for outcome, count := range stats.Outcomes {
		barLength := int(float64(count) / float64(stats.OffersSubmitted) * 20)
		bar := strings.Repeat("█", barLength)
		fmt.Printf("%-9s: %s (%d)\n", outcome, bar, count)
	}

	fmt.Println("\n" + strings.Repeat("=", 80))

	// Success rate calculation
	successRate := float64(stats.Accepted) / float64(stats.TotalListings) * 100
	log.Info().
		Float64("completion_rate", successRate).
		Int("total_listings", stats.TotalListings).
		Int("accepted_offers", stats.Accepted).
		Dur("duration", duration).
		Msg("Simulation completed")

	simClient.printPerformanceStats()
}

// seedCatalog registers a participant's common and rare items
// Returns the item ID pools for listing and offer construction
func seedCatalog(simClient *simulationClient, participantID uint) (common, rare types.ItemRefs, err error) {
	for _, name := range commonItems {
		item, err := simClient.registerItem(participantID, name, "trinket", rand.Intn(3)+1)
		if err != nil {
			return nil, nil, err
		}
		common = append(common, item.ID)
	}
	for _, name := range rareItems {
		item, err := simClient.registerItem(participantID, name, "collectible", rand.Intn(2)+trade.HighValueMinRarity)
		if err != nil {
			return nil, nil, err
		}
		rare = append(rare, item.ID)
	}
	return common, rare, nil
}

// pickRefs selects n random item IDs from a pool without repeats.
func pickRefs(pool types.ItemRefs, n int) types.ItemRefs {
	if n > len(pool) {
		n = len(pool)
	}
	perm := rand.Perm(len(pool))
	refs := make(types.ItemRefs, 0, n)
	for _, idx := range perm[:n] {
		refs = append(refs, pool[idx])
	}
	return refs
}

// createListingsHTTP generates and submits listings to the API
// Runs as a worker goroutine, sending created listing IDs to listingsChan.
// Roughly a quarter of listings use high-value validation and trade only
// rare items; the rest use the standard rules.
func createListingsHTTP(workerID, numListings int, simClient *simulationClient, ownerCommon, ownerRare, proposerCommon, proposerRare types.ItemRefs, listingsChan chan<- uint) {
	for i := 0; i < numListings; i++ {
		validation := trade.StrategyStandard
		offered := pickRefs(ownerCommon, rand.Intn(2)+1)
		wanted := pickRefs(proposerCommon, rand.Intn(2)+1)
		if rand.Intn(100) < 25 {
			validation = trade.StrategyHighValue
			offered = pickRefs(ownerRare, 1)
			wanted = pickRefs(proposerRare, 1)
		}

		listingID, err := simClient.createListing(ownerParticipant, offered, wanted, validation)
		if err != nil {
			log.Error().Err(err).
				Str("worker_id", fmt.Sprintf("%d", workerID)).
				Str("validation", validation).
				Msg("Failed to create listing")
			continue
		}

		listingsChan <- listingID
		log.Info().
			Str("worker_id", fmt.Sprintf("%d", workerID)).
			Uint("listing_id", listingID).
			Str("validation", validation).
			Int("offered_items", len(offered)).
			Int("wanted_items", len(wanted)).
			Msg("Listing created")

		// Random sleep between listings
		time.Sleep(time.Duration(rand.Intn(500)) * time.Millisecond)
	}
}

// startServer initializes and starts the barter API server
// Sets up all required services, handlers and routes
func startServer() error {
	// Initialize database
	db, err := database.NewDatabase("simulation.db")
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize services
	authService := auth.NewService(jwtSecret)
	catalogService := catalog.NewService(db)
	notificationService := notification.NewService(db)
	tradeService := trade.NewService(
		trade.NewDatabase(db),
		trade.NewOfferDatabase(db),
		notificationService,
		catalogService,
	)

	// Register demo credentials
	authService.RegisterCredentials("trainer-red-key", "trainer-red-secret", ownerParticipant)
	authService.RegisterCredentials("trainer-blue-key", "trainer-blue-secret", proposerParticipant)

	// Initialize router
	router := gin.Default()
	authHandlers := auth.NewGinHandlers(authService)
	catalogHandlers := catalog.NewGinHandlers(catalogService)
	notificationHandlers := notification.NewGinHandlers(notificationService)
	tradeHandlers := trade.NewGinHandlers(tradeService)

	// Setup routes
	setupRoutes(router, authHandlers, catalogHandlers, tradeHandlers, notificationHandlers)

	// Start the server
	return router.Run(":8080")
}

// setupRoutes configures all API endpoints and their handlers
// Groups routes by functionality and applies appropriate middleware
func setupRoutes(
	router *gin.Engine,
	authHandlers *auth.GinHandlers,
	catalogHandlers *catalog.GinHandlers,
	tradeHandlers *trade.GinHandlers,
	notificationHandlers *notification.GinHandlers,
) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/token", authHandlers.GenerateTokenHandler())
		}

		// Catalog routes
		items := v1.Group("/items")
		items.Use(middleware.JWTAuth(jwtSecret))
		{
			items.POST("", catalogHandlers.RegisterItemHandler())
			items.GET("/:item_id", catalogHandlers.GetItemHandler())
		}

		// Listing routes
		listings := v1.Group("/listings")
		listings.Use(middleware.JWTAuth(jwtSecret))
		{
			listings.POST("", tradeHandlers.CreateListingHandler())
			listings.GET("", tradeHandlers.OpenListingsHandler())
			listings.GET("/:listing_id", tradeHandlers.GetListingHandler())
			listings.POST("/:listing_id/offers", tradeHandlers.SubmitOfferHandler())
			listings.GET("/:listing_id/offers", tradeHandlers.ListingOffersHandler())
		}

		// Counter-offer routes
		offers := v1.Group("/offers")
		offers.Use(middleware.JWTAuth(jwtSecret))
		{
			offers.PUT("/:offer_id/resolve", tradeHandlers.ResolveOfferHandler())
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.JWTAuth(jwtSecret))
		{
			notifications.GET("", notificationHandlers.ListHandler())
			notifications.PUT("/:notification_id/read", notificationHandlers.MarkReadHandler())
		}
	}
}
