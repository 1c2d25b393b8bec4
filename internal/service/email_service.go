package service

import "context"

type EmailService interface {
	SendVerification(ctx context.Context, to, name, code string) error
	SendWelcome(ctx context.Context, to, name string) error
}
