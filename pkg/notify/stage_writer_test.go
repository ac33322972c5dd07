package notify_test

import (
	"bytes"
	"testing"

	"github.com/devantler-tech/snapp/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageSeparatingWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		writes []string
		want   string
	}{
		{
			name:   "first title has no leading newline",
			writes: []string{"📦 Create project...\n"},
			want:   "📦 Create project...\n",
		},
		{
			name:   "title after output is separated",
			writes: []string{"► step...\n", "🚀 Next...\n"},
			want:   "► step...\n\n🚀 Next...\n",
		},
		{
			name:   "status lines are not separated",
			writes: []string{"📦 Create project...\n", "✔ done\n", "✗ failed\n", "⠋ spin"},
			want:   "📦 Create project...\n✔ done\n✗ failed\n⠋ spin",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			writer := notify.NewStageSeparatingWriter(&out)

			for _, chunk := range testCase.writes {
				_, err := writer.Write([]byte(chunk))
				require.NoError(t, err)
			}

			assert.Equal(t, testCase.want, out.String())
		})
	}
}

func TestStageSeparatingWriter_Reset(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	writer := notify.NewStageSeparatingWriter(&out)

	_, _ = writer.Write([]byte("► step\n"))
	writer.Reset()
	_, _ = writer.Write([]byte("📦 title\n"))

	assert.Equal(t, "► step\n📦 title\n", out.String())
}
