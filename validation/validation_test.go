package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Register(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		wantMsg string
	}{
		{
			name:    "valid",
			payload: map[string]any{"name": "Alice", "email": "a@x.com", "password": "secret1"},
		},
		{
			name:    "valid with role",
			payload: map[string]any{"name": "Alice", "email": "a@x.com", "password": "secret1", "role": "admin"},
		},
		{
			name:    "unknown fields are ignored",
			payload: map[string]any{"name": "Alice", "email": "a@x.com", "password": "secret1", "nickname": 42},
		},
		{
			name:    "missing name",
			payload: map[string]any{"email": "a@x.com", "password": "secret1"},
			wantMsg: `"name" is required`,
		},
		{
			name:    "empty name",
			payload: map[string]any{"name": "", "email": "a@x.com", "password": "secret1"},
			wantMsg: `"name" is not allowed to be empty`,
		},
		{
			name:    "short name",
			payload: map[string]any{"name": "Al", "email": "a@x.com", "password": "secret1"},
			wantMsg: `"name" length must be at least 3 characters long`,
		},
		{
			name:    "long name",
			payload: map[string]any{"name": "abcdefghijklmnopqrstuvwxyzabcdef", "email": "a@x.com", "password": "secret1"},
			wantMsg: `"name" length must be less than or equal to 30 characters long`,
		},
		{
			name:    "bad email",
			payload: map[string]any{"name": "Alice", "email": "not-an-email", "password": "secret1"},
			wantMsg: `"email" must be a valid email`,
		},
		{
			name:    "short password",
			payload: map[string]any{"name": "Alice", "email": "a@x.com", "password": "abc"},
			wantMsg: `"password" length must be at least 6 characters long`,
		},
		{
			name:    "unknown role",
			payload: map[string]any{"name": "Alice", "email": "a@x.com", "password": "secret1", "role": "root"},
			wantMsg: `"role" must be one of [user, manager, admin]`,
		},
		{
			name:    "name wrong type",
			payload: map[string]any{"name": 12.0, "email": "a@x.com", "password": "secret1"},
			wantMsg: `"name" must be a string`,
		},
		{
			name:    "first violation wins",
			payload: map[string]any{"name": "Al", "email": "bad"},
			wantMsg: `"name" length must be at least 3 characters long`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(RegisterSchema, tt.payload)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestCheck_Login(t *testing.T) {
	assert.NoError(t, Check(LoginSchema, map[string]any{"email": "a@x.com", "password": "x"}))

	err := Check(LoginSchema, map[string]any{"email": "a@x.com"})
	require.Error(t, err)
	assert.Equal(t, `"password" is required`, err.Error())

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestCheck_TaskAndWeather(t *testing.T) {
	assert.NoError(t, Check(TaskSchema, map[string]any{"text": "buy milk"}))
	assert.NoError(t, Check(WeatherSchema, map[string]any{"city": "Paris"}))

	err := Check(TaskSchema, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, `"text" is required`, err.Error())

	err = Check(WeatherSchema, map[string]any{"city": nil})
	require.Error(t, err)
	assert.Equal(t, `"city" is required`, err.Error())
}

func TestCheck_Bool(t *testing.T) {
	schema := Schema{Name: "status", Fields: []Field{{Name: "status", Kind: Bool, Required: true}}}

	assert.NoError(t, Check(schema, map[string]any{"status": false}))

	err := Check(schema, map[string]any{"status": "yes"})
	require.Error(t, err)
	assert.Equal(t, `"status" must be a boolean`, err.Error())
}
