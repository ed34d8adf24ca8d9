// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"testing"

	"github.com/MKhiriev/task-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(t *testing.T, body string) Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestWhitelist_Allowed(t *testing.T) {
	assert.Equal(t, []string{"age", "email", "name", "password"}, userWhitelist.Allowed())
	assert.Equal(t, []string{"completed", "description"}, taskWhitelist.Allowed())
}

func TestWhitelist_Check(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		inError string
	}{
		{"empty", `{}`, false, ""},
		{"all allowed", `{"name":"A","email":"a@b.c","password":"x","age":1}`, false, ""},
		{"unknown key", `{"location":"Ann Arbor"}`, true, "location"},
		{"mixed", `{"name":"A","tokens":[],"_id":"x"}`, true, "_id, tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := userWhitelist.Check(payload(t, tt.body))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidUpdates)
			assert.Contains(t, err.Error(), tt.inError)
		})
	}
}

func TestWhitelist_Apply(t *testing.T) {
	original := models.User{ID: "u-1", Name: "Old", Email: "old@example.com", Age: 3, Password: "digest"}

	updated, fields, err := userWhitelist.Apply(original, payload(t, `{"name":"New","age":30,"password":"freshpass1"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "name", "password"}, fields)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, 30, updated.Age)
	assert.Equal(t, "freshpass1", updated.PlainPassword)
	assert.Equal(t, "digest", updated.Password)
	assert.Equal(t, "u-1", updated.ID)
	assert.Equal(t, "Old", original.Name, "the input entity must not be mutated")
}

func TestWhitelist_Apply_RejectsWholePayload(t *testing.T) {
	original := models.User{Name: "Old"}

	updated, fields, err := userWhitelist.Apply(original, payload(t, `{"name":"New","location":"Ann Arbor"}`))

	assert.ErrorIs(t, err, ErrInvalidUpdates)
	assert.Nil(t, fields)
	assert.Equal(t, models.User{}, updated)
	assert.Equal(t, "Old", original.Name)
}

func TestWhitelist_Apply_BadValue(t *testing.T) {
	_, _, err := userWhitelist.Apply(models.User{}, payload(t, `{"age":"thirty"}`))
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
	assert.Contains(t, err.Error(), "age")

	_, _, err = taskWhitelist.Apply(models.Task{}, payload(t, `{"completed":"yes"}`))
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
}

func TestWhitelist_Apply_Task(t *testing.T) {
	task := models.Task{ID: "t-1", Owner: "u-1", Description: "old"}

	updated, fields, err := taskWhitelist.Apply(task, payload(t, `{"completed":true}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"completed"}, fields)
	assert.True(t, updated.Completed)
	assert.Equal(t, "old", updated.Description)
	assert.Equal(t, "u-1", updated.Owner)
}

func TestWhitelist_Apply_OwnerIsNotWritable(t *testing.T) {
	_, _, err := taskWhitelist.Apply(models.Task{Owner: "u-1"}, payload(t, `{"owner":"u-2"}`))
	assert.ErrorIs(t, err, ErrInvalidUpdates)
}
