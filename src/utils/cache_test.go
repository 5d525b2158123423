package utils_test

import (
	"testing"
	"time"

	"github.com/Deveshu04/expert-succotash/src/utils"
)

func TestKeyedCache(t *testing.T) {
	t.Run("should return the cached value if valid", func(t *testing.T) {
		cache := utils.NewKeyedCache[string]()
		cache.Set("greeting", "test value", 1*time.Minute)

		value, found := cache.Get("greeting")
		if !found || value != "test value" {
			t.Error("expected 'test value', got", value)
		}
	})

	t.Run("should miss on an unknown key", func(t *testing.T) {
		cache := utils.NewKeyedCache[string]()

		if value, found := cache.Get("missing"); found {
			t.Error("expected cache miss, got", value)
		}
	})

	t.Run("should treat expired entries as absent", func(t *testing.T) {
		cache := utils.NewKeyedCache[string]()
		cache.Set("greeting", "test value", -1*time.Second)

		if value, found := cache.Get("greeting"); found {
			t.Error("expected cache miss, got", value)
		}
	})

	t.Run("should store struct values", func(t *testing.T) {
		type quote struct {
			Symbol string
			Price  float64
		}
		cache := utils.NewKeyedCache[quote]()
		cache.Set("AAPL", quote{Symbol: "AAPL", Price: 187.5}, 1*time.Minute)

		value, found := cache.Get("AAPL")
		if !found || value.Price != 187.5 {
			t.Errorf("expected price 187.5, got %+v", value)
		}
	})

	t.Run("should delete entries", func(t *testing.T) {
		cache := utils.NewKeyedCache[int]()
		cache.Set("n", 1, 1*time.Minute)
		cache.Delete("n")

		if _, found := cache.Get("n"); found {
			t.Error("expected entry to be deleted")
		}
	})

	t.Run("should drop everything on clear", func(t *testing.T) {
		cache := utils.NewKeyedCache[int]()
		cache.Set("a", 1, 1*time.Minute)
		cache.Set("b", 2, 1*time.Minute)
		cache.Clear()

		if cache.Len() != 0 {
			t.Error("expected empty cache, got", cache.Len())
		}
	})
}
