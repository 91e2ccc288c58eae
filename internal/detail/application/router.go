package application

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/davicafu/detailstream/internal/config"
	"github.com/davicafu/detailstream/internal/detail/domain"
)

// EmailDomainRouter manda el lote al stream de pruebas cuando el email del
// primer evento pertenece a un dominio de pruebas.
type EmailDomainRouter struct {
	rules config.RoutingRules
}

func NewEmailDomainRouter(rules config.RoutingRules) *EmailDomainRouter {
	return &EmailDomainRouter{rules: rules}
}

func (r *EmailDomainRouter) Route(batch []domain.ChangeEvent) string {
	if len(batch) == 0 || r.rules.TestStream == "" {
		return r.rules.DefaultStream
	}

	email, ok := routingValue(batch[0].Change.NewImage[r.rules.Attribute])
	if !ok {
		return r.rules.DefaultStream
	}
	email = strings.ToLower(strings.TrimSpace(email))

	for _, d := range r.rules.TestEmailDomains {
		if strings.HasSuffix(email, "@"+strings.ToLower(d)) {
			return r.rules.TestStream
		}
	}
	return r.rules.DefaultStream
}

// routingValue acepta un string plano o un atributo de detalle cuyo value es un string.
func routingValue(av events.DynamoDBAttributeValue) (string, bool) {
	switch v := domain.Decode(av).(type) {
	case string:
		return v, true
	case map[string]any:
		s, ok := v[domain.FieldValue].(string)
		return s, ok
	default:
		return "", false
	}
}

var _ domain.StreamRouter = (*EmailDomainRouter)(nil)
