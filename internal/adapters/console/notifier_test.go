package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/oasisnourish/storefront/internal/ports"
	"github.com/stretchr/testify/assert"
)

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf)
	ctx := context.Background()

	n.Notify(ctx, ports.Notice{Variant: ports.NoticeSuccess, Title: "Successfully signed in."})
	n.Notify(ctx, ports.Notice{Variant: ports.NoticeDestructive, Title: "Email already exists"})
	n.Notify(ctx, ports.Notice{Variant: ports.NoticeSuccess})

	assert.Equal(t, "[ok] Successfully signed in.\n[!!] Email already exists\n", buf.String())
}
