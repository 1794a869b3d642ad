package tempurl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectStatus(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		valid := []ObjectStatus{
			ObjectStatusQueued,
			ObjectStatusUploading,
			ObjectStatusAvailable,
			ObjectStatusDeactivated,
			ObjectStatusDeleted,
		}
		for _, status := range valid {
			assert.True(t, status.IsValid(), "status %q", status)
		}
		assert.False(t, ObjectStatus("pending").IsValid())
		assert.False(t, ObjectStatus("").IsValid())
	})

	t.Run("only available objects are downloadable", func(t *testing.T) {
		assert.True(t, ObjectStatusAvailable.Available())
		assert.False(t, ObjectStatusQueued.Available())
		assert.False(t, ObjectStatusUploading.Available())
		assert.False(t, ObjectStatusDeactivated.Available())
		assert.False(t, ObjectStatusDeleted.Available())
	})

	t.Run("string form", func(t *testing.T) {
		assert.Equal(t, "available", ObjectStatusAvailable.String())
	})
}

func TestSigningConfigValidate(t *testing.T) {
	valid := SigningConfig{
		URLDuration:         20 * time.Minute,
		ExpectedStartDelay:  2 * time.Minute,
		ContainerSeedLength: 3,
	}

	tests := []struct {
		name    string
		mutate  func(*SigningConfig)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *SigningConfig) {},
			wantErr: false,
		},
		{
			name: "duration equal to delay is allowed",
			mutate: func(c *SigningConfig) {
				c.URLDuration = 2 * time.Minute
			},
			wantErr: false,
		},
		{
			name: "duration below delay",
			mutate: func(c *SigningConfig) {
				c.URLDuration = time.Minute
			},
			wantErr: true,
		},
		{
			name: "seed length zero is allowed",
			mutate: func(c *SigningConfig) {
				c.ContainerSeedLength = 0
			},
			wantErr: false,
		},
		{
			name: "seed length 32 is allowed",
			mutate: func(c *SigningConfig) {
				c.ContainerSeedLength = 32
			},
			wantErr: false,
		},
		{
			name: "negative seed length",
			mutate: func(c *SigningConfig) {
				c.ContainerSeedLength = -1
			},
			wantErr: true,
		},
		{
			name: "seed length above 32",
			mutate: func(c *SigningConfig) {
				c.ContainerSeedLength = 33
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
