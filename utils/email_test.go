package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRollingSenderParsesAccounts(t *testing.T) {
	s := NewRollingSender("smtp.example.com", "465", "queue1@example.com:pass1, queue2@example.com:pass2")

	assert.Equal(t, "smtp.example.com", s.Host)
	assert.Equal(t, 465, s.Port)
	assert.Len(t, s.Accounts, 2)
	assert.Equal(t, "queue1@example.com", s.Accounts[0].Username)
	assert.Equal(t, "pass2", s.Accounts[1].Password)
}

func TestNewRollingSenderDefaultsPortAndSkipsBadPairs(t *testing.T) {
	s := NewRollingSender("smtp.example.com", "abc", "valid@example.com:pw,broken,:nopw,")

	assert.Equal(t, 587, s.Port)
	assert.Len(t, s.Accounts, 1)
	assert.Equal(t, "valid@example.com", s.Accounts[0].Username)
}

func TestRollingSenderRotates(t *testing.T) {
	s := NewRollingSender("smtp.example.com", "587", "a@example.com:1,b@example.com:2,c@example.com:3")

	assert.Equal(t, "a@example.com", s.nextAccount().Username)
	assert.Equal(t, "b@example.com", s.nextAccount().Username)
	assert.Equal(t, "c@example.com", s.nextAccount().Username)
	// vòng lại từ đầu
	assert.Equal(t, "a@example.com", s.nextAccount().Username)
}

func TestRollingSenderNoAccounts(t *testing.T) {
	s := NewRollingSender("smtp.example.com", "587", "")

	err := s.Send("subject", "body", []string{"to@example.com"}, nil)
	assert.Error(t, err)
}
