package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/contactbook/internal/domain"
	"github.com/pkordes/contactbook/internal/service"
)

func echoTagRepo() *mockTagRepo {
	return &mockTagRepo{
		create: func(_ context.Context, l domain.Label) (domain.Label, error) { return l, nil },
	}
}

func TestTagService_Create_OK(t *testing.T) {
	svc := service.NewTagService(echoTagRepo())

	got, err := svc.Create(context.Background(), " vip ", " #AABBCC ")

	require.NoError(t, err)
	assert.Equal(t, "vip", got.Name)
	assert.Equal(t, "#aabbcc", got.Color, "color is stored lowercase")
	assert.NotEmpty(t, got.ID.String())
}

func TestTagService_Create_ColorOptional(t *testing.T) {
	svc := service.NewTagService(echoTagRepo())

	got, err := svc.Create(context.Background(), "lead", "")

	require.NoError(t, err)
	assert.Empty(t, got.Color)
}

func TestTagService_Create_Validation(t *testing.T) {
	cases := []struct {
		name, tagName, color string
	}{
		{"blank name", "  ", ""},
		{"name too long", strings.Repeat("x", 65), ""},
		{"short color", "vip", "#abc"},
		{"color without hash", "vip", "aabbcc"},
		{"non-hex color", "vip", "#gggggg"},
	}
	svc := service.NewTagService(&mockTagRepo{})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.tagName, tc.color)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTagService_Create_LongMultibyteNameAllowed(t *testing.T) {
	svc := service.NewTagService(echoTagRepo())

	_, err := svc.Create(context.Background(), strings.Repeat("é", 64), "")

	assert.NoError(t, err, "the limit counts characters, not bytes")
}

func TestTagService_List_TrimsPrefixAndNeverNil(t *testing.T) {
	var gotPrefix string
	svc := service.NewTagService(&mockTagRepo{
		list: func(_ context.Context, prefix string) ([]domain.Label, error) {
			gotPrefix = prefix
			return nil, nil
		},
	})

	got, err := svc.List(context.Background(), "  mou ")

	require.NoError(t, err)
	assert.Equal(t, "mou", gotPrefix)
	assert.NotNil(t, got)
}

func TestTagService_List_RepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := service.NewTagService(&mockTagRepo{
		list: func(context.Context, string) ([]domain.Label, error) { return nil, boom },
	})

	_, err := svc.List(context.Background(), "")

	assert.ErrorIs(t, err, boom)
}
