package notes

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/davit-sh/davit/internal/secrets"
)

// quickstartTemplate is the ready-to-run command sequence printed at the
// end of the summary. Credentials are fetched inline by the shell, so the
// block stays copy-pasteable without the document disclosing anything.
const quickstartTemplate = `kubectl -n {{ .Namespace }} port-forward svc/{{ .GatewayService }} {{ .GatewayPort }}:{{ .GatewayPort }} &
ADMIN_USER=$({{ .UserCommand }})
ADMIN_PASSWORD=$({{ .PasswordCommand }})
TOKEN=$(curl -sf -u "${ADMIN_USER}:${ADMIN_PASSWORD}" -X POST http://localhost:{{ .GatewayPort }}/v1/auth/token | jq -r .token)
curl -sf -H {{ printf "Authorization: Bearer ${TOKEN}" | quote }} \
  -X POST http://localhost:{{ .GatewayPort }}/v1/services \
  -d {{ .RegisterPayload | quote }}`

type quickstartData struct {
	Namespace       string
	GatewayService  string
	GatewayPort     int
	UserCommand     string
	PasswordCommand string
	RegisterPayload string
}

func (r *renderer) quickstartSection(_ context.Context, doc *Document) error {
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

	data := quickstartData{
		Namespace:       r.rel.Namespace,
		GatewayService:  r.rel.ResourceName("gateway"),
		GatewayPort:     port,
		UserCommand:     retrievalCommand(r.rel.Namespace, authSecret, usernameKey),
		PasswordCommand: retrievalCommand(r.rel.Namespace, authSecret, passwordKey),
		RegisterPayload: `{"name":"example","endpoint":"opc.tcp://device.local:4840"}`,
	}

	tmpl, err := template.New("quickstart").Funcs(sprig.TxtFuncMap()).Parse(quickstartTemplate)
	if err != nil {
		return fmt.Errorf("parse quickstart template: %w", err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return fmt.Errorf("render quickstart: %w", err)
	}

	doc.Sections = append(doc.Sections, Section{
		Title: "Quick start",
		Lines: strings.Split(out.String(), "\n"),
	})
	return nil
}
