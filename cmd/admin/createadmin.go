package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

// createAdmin creates an admin account unless one already exists for email.
func (cli *commandLine) createAdmin(name, email, pwd string) error {
	ctx := context.Background()
	email = domain.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if _, err := cli.users.FindByEmail(ctx, email); err == nil {
		fmt.Fprintln(cli.out, "admin already exists")
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	cred, err := domain.HashPassword(pwd)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	created, err := cli.users.Create(ctx, &domain.User{
		Name:       name,
		Email:      email,
		Credential: cred,
		Role:       domain.RoleAdmin,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "admin created: %s (%s)\n", created.Email, created.ID)
	return nil
}
