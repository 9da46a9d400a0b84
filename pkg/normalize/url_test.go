package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/vitam-chat/pkg/normalize"
)

func TestCleanURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "markdown link", raw: "[label](https://x.test/a)", want: "https://x.test/a"},
		{name: "plain url", raw: "https://x.test/a", want: "https://x.test/a"},
		{name: "empty", raw: "", want: ""},
		{name: "markdown with surrounding text", raw: "Voir [ici](https://x.test/b) !", want: "https://x.test/b"},
		{name: "empty target passes through", raw: "[label]()", want: "[label]()"},
		{name: "not a url", raw: "pas une url", want: "pas une url"},
		{name: "first link wins", raw: "[a](https://x.test/1) [b](https://x.test/2)", want: "https://x.test/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.CleanURL(tt.raw))
		})
	}
}
