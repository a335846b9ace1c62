package utils

import (
	"bytes"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/gomail.v2"
)

type SMTPAccount struct {
	Username string
	Password string
}

// RollingSender xoay vòng nhiều tài khoản SMTP khi gửi mail.
// State xoay vòng nằm trong struct, không dùng biến global.
type RollingSender struct {
	Host     string
	Port     int
	Accounts []SMTPAccount

	mu   sync.Mutex
	next int
}

type Attachment struct {
	Filename string
	Data     []byte
	MimeType string
}

func NewRollingSender(host, portStr, accountsStr string) *RollingSender {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 587
	}

	// SMTP_ACCOUNTS dạng "user1:pass1,user2:pass2"
	var accounts []SMTPAccount
	for _, pair := range strings.Split(accountsStr, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		accounts = append(accounts, SMTPAccount{Username: parts[0], Password: parts[1]})
	}

	return &RollingSender{Host: host, Port: port, Accounts: accounts}
}

func (s *RollingSender) nextAccount() SMTPAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	account := s.Accounts[s.next%len(s.Accounts)]
	s.next++
	return account
}

// Send thử lần lượt từng account cho tới khi gửi được
func (s *RollingSender) Send(subject, body string, to []string, attachments []Attachment) error {
	if len(s.Accounts) == 0 {
		return errors.New("no smtp accounts configured")
	}

	for i := 0; i < len(s.Accounts); i++ {
		account := s.nextAccount()

		m := gomail.NewMessage()
		m.SetHeader("From", account.Username)
		m.SetHeader("To", to...)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", body)
		for _, att := range attachments {
			data := att.Data
			m.Attach(att.Filename, gomail.Rename(att.Filename), gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(data))
				return err
			}))
		}

		d := gomail.NewDialer(s.Host, s.Port, account.Username, account.Password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email qua %s: %v", account.Username, err)
			continue
		}
		log.Printf("Email đã gửi qua %s", account.Username)
		return nil
	}

	return errors.New("all smtp accounts failed to send")
}
