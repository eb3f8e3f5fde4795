package catalog

import (
	"testing"

	"tincadia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	style, ok := c.StatusStyle(models.TransactionStatusApproved)
	require.True(t, ok)
	assert.Equal(t, "#16a34a", style.Color)

	assert.Equal(t, "payments", c.CategoryFor("PAYMENT_APPROVED").Key)
	assert.Equal(t, "general", c.CategoryFor("something_new").Key)

	schema, ok := c.FormSchema("interpreter_request")
	require.True(t, ok)
	assert.Equal(t, KindFile, schema.Fields[len(schema.Fields)-1].Kind)
	assert.Equal(t, "Contacto", c.FormLabel("contact"))
	assert.Equal(t, "newsletter", c.FormLabel("newsletter"))
}

const statuses = `
transactionStatuses:
  - {status: APPROVED, color: a}
  - {status: PENDING, color: b}
  - {status: DECLINED, color: c}
  - {status: ERROR, color: d}
  - {status: VOIDED, color: e}
`

func TestLoadRejectsInvalidTables(t *testing.T) {
	cases := map[string]string{
		"missing status style": `
transactionStatuses:
  - {status: APPROVED, color: a}
notificationCategories:
  - {key: general, default: true}
`,
		"duplicate notification type": statuses + `
notificationCategories:
  - {key: a, types: [x]}
  - {key: b, types: [x], default: true}
`,
		"no default category": statuses + `
notificationCategories:
  - {key: a, types: [x]}
`,
		"unknown field kind": statuses + `
notificationCategories:
  - {key: general, default: true}
formTypes:
  - type: contact
    fields:
      - {key: age, kind: number}
`,
		"duplicate form type": statuses + `
notificationCategories:
  - {key: general, default: true}
formTypes:
  - {type: contact}
  - {type: contact}
`,
	}

	for name, doc := range cases {
		doc := doc
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadAcceptsMinimalCatalog(t *testing.T) {
	c, err := Load([]byte(statuses + `
notificationCategories:
  - {key: general, default: true}
`))
	require.NoError(t, err)
	assert.Equal(t, "general", c.CategoryFor("anything").Key)
}
