// Package notes renders the post-deployment summary for a release.
//
// The document is built from the release context and resolved values only;
// the one external touch is the optional live secret lookup, performed
// solely when the caller passes ShowSecrets and degraded to a placeholder
// when the secret does not exist yet. A single boolean redaction flag
// covers the whole document; there is no per-line override.
package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/davit-sh/davit/internal/secrets"
	"github.com/davit-sh/davit/internal/values"
)

// Placeholders used for secret-bearing lines.
const (
	// Hidden replaces secret material under redaction, and signing-key
	// material whose secret is missing even under disclosure.
	Hidden = "<hidden>"

	// NotYetCreated replaces credential material whose secret does not
	// exist yet under disclosure.
	NotYetCreated = "<secret-not-yet-created>"
)

// Section is one titled block of the summary.
type Section struct {
	Title string
	Lines []string
}

// Document is the ordered post-deployment summary.
type Document struct {
	Sections []Section

	// Redacted records the single disclosure decision the document was
	// rendered under.
	Redacted bool
}

// Options controls one render of the summary.
type Options struct {
	// ShowSecrets opts into live secret disclosure. It is an explicit
	// per-invocation parameter, never ambient state.
	ShowSecrets bool

	// Store is consulted only when ShowSecrets is set; at most one lookup
	// per secret name, never retried.
	Store secrets.Store
}

// renderer carries per-invocation lookup state so each secret is fetched
// at most once.
type renderer struct {
	rel    values.Release
	res    *values.Resolver
	opts   Options
	looked map[string]map[string]string
}

// Render builds the summary document. Secret lookups are best-effort:
// a missing secret degrades to a placeholder, it never fails the render.
func Render(ctx context.Context, rel values.Release, res *values.Resolver, opts Options) (*Document, error) {
	r := &renderer{
		rel:    rel,
		res:    res,
		opts:   opts,
		looked: make(map[string]map[string]string),
	}

	doc := &Document{Redacted: !opts.ShowSecrets}

	builders := []func(context.Context, *Document) error{
		r.gatewaySection,
		r.signingSection,
		r.consoleSection,
		r.postgresSection,
		r.redisSection,
		r.quickstartSection,
	}
	for _, build := range builders {
		if err := build(ctx, doc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// secretValue produces the display text for one secret-bearing value.
// Under redaction nothing is fetched at all; under disclosure the store is
// consulted once per secret name and a miss degrades to fallback.
func (r *renderer) secretValue(ctx context.Context, secretName, key, fallback string) string {
	if !r.opts.ShowSecrets {
		return Hidden
	}

	data, attempted := r.looked[secretName]
	if !attempted {
		fetched, err := r.opts.Store.Get(ctx, r.rel.Namespace, secretName)
		if err != nil {
			fetched = nil
		}
		r.looked[secretName] = fetched
		data = fetched
	}

	if value, ok := data[key]; ok {
		return value
	}
	return fallback
}

// retrievalCommand is the out-of-band fetch command printed next to every
// redacted value.
func retrievalCommand(namespace, secretName, key string) string {
	return fmt.Sprintf("kubectl get secret %s -n %s -o jsonpath='{.data.%s}' | base64 -d",
		secretName, namespace, key)
}

// secretLine formats one secret-bearing line; redacted lines carry the
// retrieval command inline.
func (r *renderer) secretLine(ctx context.Context, label, secretName, key, fallback string) string {
	if !r.opts.ShowSecrets {
		return fmt.Sprintf("%s: %s  (%s)", label, Hidden, retrievalCommand(r.rel.Namespace, secretName, key))
	}
	return fmt.Sprintf("%s: %s", label, r.secretValue(ctx, secretName, key, fallback))
}

func (r *renderer) gatewaySection(ctx context.Context, doc *Document) error {
	port, err := r.res.Int("gateway.port", true)
	if err != nil {
		return err
	}
	authOverride, err := r.res.String("gateway.auth.existingSecret", false)
	if err != nil {
		return err
	}
	usernameKey, err := r.res.StringOr("gateway.auth.usernameKey", "admin-user")
	if err != nil {
		return err
	}
	passwordKey, err := r.res.StringOr("gateway.auth.passwordKey", "admin-password")
	if err != nil {
		return err
	}
	authSecret := secrets.Name(r.rel, "gateway", "auth", authOverride)

	lines := []string{
		fmt.Sprintf("Endpoint: http://%s.%s.svc.cluster.local:%d",
			r.rel.ResourceName("gateway"), r.rel.Namespace, port),
	}

	enabled, err := r.res.Bool("gateway.ingress.enabled", false)
	if err != nil {
		return err
	}
	if enabled {
		host, err := r.res.String("gateway.ingress.host", true)
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("External: http://%s/", host))
	}

	lines = append(lines,
		r.secretLine(ctx, "Admin user", authSecret, usernameKey, NotYetCreated),
		r.secretLine(ctx, "Admin password", authSecret, passwordKey, NotYetCreated),
	)

	doc.Sections = append(doc.Sections, Section{Title: "Gateway", Lines: lines})
	return nil
}

func (r *renderer) signingSection(ctx context.Context, doc *Document) error {
	override, err := r.res.String("gateway.signing.existingSecret", false)
	if err != nil {
		return err
	}
	key, err := r.res.StringOr("gateway.signing.key", "signing-key")
	if err != nil {
		return err
	}
	secretName := secrets.Name(r.rel, "gateway", "signing-key", override)

	// The signing key never gets the not-yet-created fallback: a miss
	// still renders as hidden.
	doc.Sections = append(doc.Sections, Section{
		Title: "Token signing",
		Lines: []string{r.secretLine(ctx, "Signing key", secretName, key, Hidden)},
	})
	return nil
}

func (r *renderer) consoleSection(_ context.Context, doc *Document) error {
	port, err := r.res.Int("console.port", true)
	if err != nil {
		return err
	}
	doc.Sections = append(doc.Sections, Section{
		Title: "Console",
		Lines: []string{
			fmt.Sprintf("Endpoint: http://%s.%s.svc.cluster.local:%d",
				r.rel.ResourceName("console"), r.rel.Namespace, port),
		},
	})
	return nil
}

func (r *renderer) postgresSection(ctx context.Context, doc *Document) error {
	host, err := r.res.String("postgres.host", false)
	if err != nil {
		return err
	}
	if host == "" {
		host = r.rel.ResourceName("postgres")
	}
	port, err := r.res.Int("postgres.port", true)
	if err != nil {
		return err
	}
	database, err := r.res.String("postgres.database", true)
	if err != nil {
		return err
	}
	override, err := r.res.String("postgres.auth.existingSecret", false)
	if err != nil {
		return err
	}
	userKey, err := r.res.StringOr("postgres.auth.userKey", "username")
	if err != nil {
		return err
	}
	passwordKey, err := r.res.StringOr("postgres.auth.passwordKey", "password")
	if err != nil {
		return err
	}
	secretName := secrets.Name(r.rel, "postgres", "secret", override)

	doc.Sections = append(doc.Sections, Section{
		Title: "PostgreSQL",
		Lines: []string{
			fmt.Sprintf("Host: %s", host),
			fmt.Sprintf("Port: %d", port),
			fmt.Sprintf("Database: %s", database),
			r.secretLine(ctx, "User", secretName, userKey, NotYetCreated),
			r.secretLine(ctx, "Password", secretName, passwordKey, NotYetCreated),
		},
	})
	return nil
}

func (r *renderer) redisSection(_ context.Context, doc *Document) error {
	host, err := r.res.String("redis.host", false)
	if err != nil {
		return err
	}
	if host == "" {
		host = r.rel.ResourceName("redis")
	}
	port, err := r.res.Int("redis.port", true)
	if err != nil {
		return err
	}
	doc.Sections = append(doc.Sections, Section{
		Title: "Redis",
		Lines: []string{
			fmt.Sprintf("Host: %s", host),
			fmt.Sprintf("Port: %d", port),
		},
	})
	return nil
}

// String renders the document as display text.
func (d *Document) String() string {
	var b strings.Builder
	for i, section := range d.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("== " + section.Title + " ==\n")
		for _, line := range section.Lines {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}
