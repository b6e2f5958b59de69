// Package main generates development access tokens for the legalcheck API.
// Tokens are signed with the dev key and are rejected in production.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	jwttoken "legalcheck/internal/jwt_token"
	"legalcheck/internal/platform/config"
	id "legalcheck/pkg/domain"
	"legalcheck/pkg/secrets"
)

const (
	defaultIssuer   = "legalcheck"
	defaultAudience = "legalcheck-api"
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in"`
	Claims    map[string]any    `json:"claims,omitempty"`
	Usage     map[string]string `json:"usage"`
}

type accessOptions struct {
	userID    string
	sessionID string
	key       string
	issuer    string
	audience  string
	ttl       time.Duration
	json      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "access":
		var opts accessOptions
		fs := flag.NewFlagSet("access", flag.ContinueOnError)
		fs.SetOutput(out)
		fs.StringVar(&opts.userID, "user-id", "", "User ID (UUID). Generated if empty.")
		fs.StringVar(&opts.sessionID, "session-id", "", "Session ID (UUID). Generated if empty.")
		fs.StringVar(&opts.key, "key", config.DevSigningKey, "HS256 signing key")
		fs.StringVar(&opts.issuer, "issuer", defaultIssuer, "Token issuer")
		fs.StringVar(&opts.audience, "audience", defaultAudience, "Token audience")
		fs.DurationVar(&opts.ttl, "ttl", config.TokenTTL, "Token time-to-live")
		fs.BoolVar(&opts.json, "json", false, "Output as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return generateAccessToken(out, opts)
	case "key":
		key, err := secrets.GenerateKey()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, key)
		return nil
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(out)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, `tokengen - Generate development tokens for the legalcheck API

WARNING: The default signing key is the dev key. Such tokens do NOT work
         when ENVIRONMENT=production.

Usage:
  tokengen <command> [flags]

Commands:
  access    Generate an access token (JWT)
  key       Print a random signing key for JWT_SIGNING_KEY

Examples:
  tokengen access
  tokengen access -user-id "550e8400-e29b-41d4-a716-446655440000" -ttl 1h
  tokengen access -json`)
}

func generateAccessToken(out io.Writer, opts accessOptions) error {
	uid := id.NewUserID()
	if opts.userID != "" {
		parsed, err := id.ParseUserID(opts.userID)
		if err != nil {
			return err
		}
		uid = parsed
	}
	sid := id.NewSessionID()
	if opts.sessionID != "" {
		parsed, err := id.ParseSessionID(opts.sessionID)
		if err != nil {
			return err
		}
		sid = parsed
	}

	svc := jwttoken.NewJWTService(opts.key, opts.issuer, opts.audience, opts.ttl)
	token, jti, err := svc.GenerateAccessToken(context.Background(), uid, sid)
	if err != nil {
		return err
	}

	keyType := "custom"
	if opts.key == config.DevSigningKey {
		keyType = "dev"
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tokenOutput{
			Token:     token,
			Type:      "access_token",
			ExpiresIn: opts.ttl.String(),
			Claims: map[string]any{
				"user_id":    uid.String(),
				"session_id": sid.String(),
				"jti":        jti,
			},
			Usage: map[string]string{
				"header":      "Authorization: Bearer <token>",
				"signing_key": keyType,
			},
		})
	}

	fmt.Fprintln(out, "Access Token (JWT)")
	fmt.Fprintln(out, "==================")
	fmt.Fprintf(out, "Signing Key: %s\n", keyType)
	fmt.Fprintf(out, "Expires In:  %s\n", opts.ttl)
	fmt.Fprintf(out, "User ID:     %s\n", uid)
	fmt.Fprintf(out, "Session ID:  %s\n", sid)
	fmt.Fprintf(out, "JTI:         %s\n", jti)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Token:")
	fmt.Fprintln(out, token)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, `  curl -H "Authorization: Bearer <token>" http://localhost:8080/api/v1/persons`)
	return nil
}
