package loader_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/loader"
	"github.com/fwojciec/docindex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Fetch(t *testing.T) {
	t.Parallel()

	tagged := func(tag string) *mock.ArtifactSource {
		return &mock.ArtifactSource{
			FetchFn: func(_ context.Context, location string) ([]byte, error) {
				return []byte(tag + ":" + location), nil
			},
		}
	}

	tests := []struct {
		location string
		want     string
	}{
		{"https://docs.example.org/search_index.js", "remote:https://docs.example.org/search_index.js"},
		{"HTTP://docs.example.org/x.js", "remote:HTTP://docs.example.org/x.js"},
		{"file:///srv/search_index.js", "local:file:///srv/search_index.js"},
		{"./build/search_index.js", "local:./build/search_index.js"},
	}

	router := &loader.Router{Remote: tagged("remote"), Local: tagged("local")}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			t.Parallel()

			data, err := router.Fetch(context.Background(), tt.location)

			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}

	t.Run("returns EINVALID when source kind is not configured", func(t *testing.T) {
		t.Parallel()

		_, err := (&loader.Router{}).Fetch(context.Background(), "https://docs.example.org/")
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))

		_, err = (&loader.Router{}).Fetch(context.Background(), "/srv/x.js")
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})
}

func TestHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "docs.example.org", loader.Host("https://docs.example.org/dev/search_index.js"))
	assert.Equal(t, "localhost:8080", loader.Host("http://localhost:8080/"))
	assert.Empty(t, loader.Host("/srv/search_index.js"))
	assert.Empty(t, loader.Host("file:///srv/search_index.js"))
}
