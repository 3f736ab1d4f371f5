package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/config"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			name: "public base wins",
			cfg:  config.StorageConfig{PublicURL: "https://cdn.example/", Endpoint: "minio:9000", BucketImages: "hotel-images"},
			want: "https://cdn.example/hotel-images/hotels/a.png",
		},
		{
			name: "plain endpoint",
			cfg:  config.StorageConfig{Endpoint: "minio:9000", BucketImages: "hotel-images"},
			want: "http://minio:9000/hotel-images/hotels/a.png",
		},
		{
			name: "tls endpoint",
			cfg:  config.StorageConfig{Endpoint: "s3.example", UseSSL: true, BucketImages: "imgs"},
			want: "https://s3.example/imgs/hotels/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicURL(tt.cfg, "hotels/a.png"))
		})
	}
}
