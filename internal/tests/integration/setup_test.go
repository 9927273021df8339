package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/derive-duel-backend/internal/config"
	"github.com/pushp314/derive-duel-backend/internal/database"
	"github.com/pushp314/derive-duel-backend/internal/duel"
	"github.com/pushp314/derive-duel-backend/internal/evaluator"
	"github.com/pushp314/derive-duel-backend/internal/handlers"
	"github.com/pushp314/derive-duel-backend/internal/hints"
	"github.com/pushp314/derive-duel-backend/internal/routes"
	"github.com/pushp314/derive-duel-backend/internal/seeds"
	"github.com/pushp314/derive-duel-backend/internal/services"
	"github.com/pushp314/derive-duel-backend/internal/store"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// keyedRemote answers only when called with its key and records every call
type keyedRemote struct {
	key      string
	progress int

	mu   sync.Mutex
	keys []string
}

func (r *keyedRemote) Invoke(ctx context.Context, req evaluator.Request) (json.RawMessage, error) {
	r.mu.Lock()
	r.keys = append(r.keys, req.APIKey)
	r.mu.Unlock()

	if req.APIKey != r.key {
		return nil, errors.New("permission denied")
	}
	if req.Action == evaluator.ActionHint {
		return json.Marshal(map[string]string{"response": "Consider the product of all primes plus one."})
	}
	return json.Marshal(map[string]interface{}{
		"is_correct":     r.progress >= 80,
		"on_right_track": r.progress >= 40,
		"progress":       r.progress,
		"feedback":       "Checked by the remote evaluator.",
	})
}

type testApp struct {
	db     *gorm.DB
	router *gin.Engine
	remote *keyedRemote
}

// setupApp builds the full router over an in-memory database seeded with
// the bundled proofs. No server credential is configured.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	proofs, err := seeds.DefaultProofs()
	require.NoError(t, err)
	_, _, err = seeds.SeedProofs(context.Background(), db, proofs)
	require.NoError(t, err)

	remote := &keyedRemote{key: "caller-key", progress: 90}
	cred := config.ResolveCredential("", "", "")
	norm := evaluator.NewNormalizer(remote, cred)
	signer, err := duel.NewSigner("integration-secret")
	require.NoError(t, err)

	st := store.New(db)
	cache := database.NewCache(nil)
	h := &handlers.Handler{
		DB:        db,
		Store:     st,
		Evaluator: norm,
		Hints:     hints.NewBroker(remote, cred),
		Budget:    services.NewHintBudget(cache, 3),
		Duels:     duel.NewService(st, norm, signer),
		Cache:     cache,
	}

	return &testApp{db: db, router: routes.NewRouter(h, nil, ""), remote: remote}
}

func (a *testApp) request(t *testing.T, method, path string, body interface{}, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}
