package user

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDTO_MapsFieldsAndOmitsPassword(t *testing.T) {
	email := "js123@cam.ac.uk"
	created := time.Date(2026, 2, 17, 15, 20, 41, 0, time.UTC)

	u := User{
		UID:       123,
		Username:  "johndoe",
		Password:  "$2a$10$hash",
		Email:     &email,
		IsAdmin:   true,
		CreatedAt: created,
		UpdatedAt: created,
	}

	dto := u.DTO()
	assert.Equal(t, uint(123), dto.UID)
	assert.Equal(t, "johndoe", dto.Username)
	assert.Equal(t, &email, dto.Email)
	assert.True(t, dto.IsAdmin)
	assert.Equal(t, "2026-02-17 15:20:41", dto.CreatedAt)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.NotContains(t, string(raw), "password")
}

func TestDTOs_EmptyListStaysNonNil(t *testing.T) {
	out := DTOs(nil)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)

	out = DTOs([]User{{UID: 1, Username: "a"}, {UID: 2, Username: "b"}})
	assert.Len(t, out, 2)
	assert.Equal(t, "b", out[1].Username)
}
