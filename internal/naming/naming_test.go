package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsTransform(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"user_name", true},
		{"users", true},
		{"id", true},
		{"userName", false},
		{"UserProfile", false},
		{"user_Id", false},
		{"api_v2_key", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NeedsTransform(tt.input))
		})
	}
}

func TestToModelName(t *testing.T) {
	namer := Default()

	tests := []struct {
		input    string
		expected string
	}{
		{"users", "User"},
		{"order_items", "OrderItem"},
		{"user_profiles", "UserProfile"},
		{"categories", "Category"},
		{"people", "Person"},
		{"status", "Status"},
		{"api_v2_endpoints", "ApiV2Endpoint"},
		{"a", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := namer.ToModelName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestToFieldName(t *testing.T) {
	namer := Default()

	tests := []struct {
		input    string
		expected string
	}{
		{"user_name", "userName"},
		{"created_at", "createdAt"},
		{"id", "id"},
		{"user_profile_id", "userProfileId"},
		{"api_v2_key", "apiV2Key"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := namer.ToFieldName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSingularizeOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SingularOverrides["data"] = "datum"
	namer := New(cfg, nil)

	assert.Equal(t, "datum", namer.Singularize("data"))
	assert.Equal(t, "user", namer.Singularize("users"))
}

func TestToModelNameWithOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SingularOverrides["user_metadata"] = "user_metadatum"
	namer := New(cfg, nil)

	assert.Equal(t, "UserMetadatum", namer.ToModelName("user_metadata"))
}

func TestPluralize(t *testing.T) {
	namer := Default()

	tests := []struct {
		input    string
		expected string
	}{
		{"user", "users"},
		{"category", "categories"},
		{"person", "people"},
		{"status", "statuses"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, namer.Pluralize(tt.input))
		})
	}
}
