package service

import (
	"strings"

	"github.com/MKhiriev/task-manager/models"
)

// normalizeUser trims the name and a pending password, and trims and
// lower-cases the email.
func normalizeUser(user models.User) models.User {
	user.Name = strings.TrimSpace(user.Name)
	user.PlainPassword = strings.TrimSpace(user.PlainPassword)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return user
}

func normalizeTask(task models.Task) models.Task {
	task.Description = strings.TrimSpace(task.Description)
	return task
}

// applyPendingSideEffects is the single step every user write path runs
// right before persistence. It normalizes the profile fields and, when a
// plaintext password is pending, replaces the stored digest with its hash and
// clears the plaintext. A user without a pending password keeps its digest
// untouched.
func applyPendingSideEffects(user models.User, credentials CredentialService) (models.User, error) {
	user = normalizeUser(user)

	if user.PlainPassword == "" {
		return user, nil
	}

	digest, err := credentials.Hash(user.PlainPassword)
	if err != nil {
		return models.User{}, err
	}
	user.Password = digest
	user.PlainPassword = ""

	return user, nil
}
