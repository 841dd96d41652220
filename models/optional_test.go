// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentUpdate_UnmarshalPresenceFlags(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		check   func(t *testing.T, u StudentUpdate)
		wantErr error
	}{
		{
			name: "absent fields stay unset",
			body: `{"faculty":"Physics"}`,
			check: func(t *testing.T, u StudentUpdate) {
				assert.True(t, u.Faculty.Set)
				assert.Equal(t, "Physics", u.Faculty.Value)
				assert.False(t, u.LastName.Set)
				assert.False(t, u.FirstName.Set)
				assert.False(t, u.Course.Set)
				assert.False(t, u.Result.Set)
			},
		},
		{
			name: "zero result is a real update",
			body: `{"result":0}`,
			check: func(t *testing.T, u StudentUpdate) {
				assert.True(t, u.Result.Set)
				assert.Equal(t, 0, u.Result.Value)
			},
		},
		{
			name: "empty string is a real update",
			body: `{"course":""}`,
			check: func(t *testing.T, u StudentUpdate) {
				assert.True(t, u.Course.Set)
				assert.Empty(t, u.Course.Value)
			},
		},
		{
			name: "empty object is empty update",
			body: `{}`,
			check: func(t *testing.T, u StudentUpdate) {
				assert.True(t, u.IsEmpty())
			},
		},
		{
			name:    "explicit null is rejected",
			body:    `{"lastname":null}`,
			wantErr: ErrNullNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u StudentUpdate
			err := json.Unmarshal([]byte(tt.body), &u)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, u)
		})
	}
}

func TestOptional_WrongType(t *testing.T) {
	var u StudentUpdate
	err := json.Unmarshal([]byte(`{"result":"ten"}`), &u)
	require.Error(t, err)
}

func TestOptional_Marshal(t *testing.T) {
	data, err := json.Marshal(struct {
		A Optional[int]    `json:"a"`
		B Optional[string] `json:"b"`
	}{A: Some(7)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":7,"b":null}`, string(data))
}
