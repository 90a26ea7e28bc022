package input

import (
	"bytes"
	"io"
	"testing"

	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	total   int
	intents []domain.Intent
}

func (r *recorder) Dispatch(i domain.Intent) { r.intents = append(r.intents, i) }
func (r *recorder) Total() int              { return r.total }

func TestKeyboard_Mapping(t *testing.T) {
	tests := []struct {
		key     Key
		want    domain.Intent
		handled bool
	}{
		{Key{Name: KeyArrowRight}, domain.Next(), true},
		{Key{Name: KeyArrowDown}, domain.Next(), true},
		{Key{Name: KeySpace}, domain.Next(), true},
		{Key{Name: KeyPageDown}, domain.Next(), true},
		{Key{Name: KeyArrowLeft}, domain.Prev(), true},
		{Key{Name: KeyArrowUp}, domain.Prev(), true},
		{Key{Name: KeyPageUp}, domain.Prev(), true},
		{Key{Name: KeyHome}, domain.GoTo(0), true},
		{Key{Name: KeyEnd}, domain.GoTo(4), true},
		{Key{Name: "f"}, domain.ToggleFullscreen(), true},
		{Key{Name: "F"}, domain.ToggleFullscreen(), true},
		{Key{Name: KeyEscape}, domain.ExitFullscreen(), true},
		{Key{Name: "f", Ctrl: true}, domain.Intent{}, false},
		{Key{Name: "F", Meta: true}, domain.Intent{}, false},
		{Key{Name: "x"}, domain.Intent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.Name, func(t *testing.T) {
			rec := &recorder{total: 5}
			kb := NewKeyboard(rec)

			handled := kb.Handle(tt.key)
			assert.Equal(t, tt.handled, handled)
			if tt.handled {
				require.Len(t, rec.intents, 1)
				assert.Equal(t, tt.want, rec.intents[0])
			} else {
				assert.Empty(t, rec.intents)
			}
		})
	}
}

func TestTouch_SwipeDispatch(t *testing.T) {
	rec := &recorder{total: 3}
	touch := NewTouch(rec, 0)

	touch.Start(200, 0)
	assert.Equal(t, gesture.Next, touch.End(100, 0))

	touch.Start(100, 0)
	assert.Equal(t, gesture.Prev, touch.End(200, 0))

	touch.Start(100, 0)
	assert.Equal(t, gesture.None, touch.End(120, 0))

	touch.Start(100, 0)
	assert.Equal(t, gesture.None, touch.End(150, 60))

	assert.Equal(t, []domain.Intent{domain.Next(), domain.Prev()}, rec.intents)
}

func TestTouch_EndWithoutStart(t *testing.T) {
	rec := &recorder{total: 3}
	touch := NewTouch(rec, 0)
	assert.Equal(t, gesture.None, touch.End(0, 0))
	assert.Empty(t, rec.intents)
}

func TestDotsAndButtons(t *testing.T) {
	rec := &recorder{total: 3}
	NewDots(rec).Select(2)
	b := NewButtons(rec)
	b.Prev()
	b.Next()

	assert.Equal(t, []domain.Intent{domain.GoTo(2), domain.Prev(), domain.Next()}, rec.intents)
}

func TestTerminalDecoder(t *testing.T) {
	in := []byte{
		0x1b, '[', 'C', // right
		0x1b, '[', 'D', // left
		0x1b, '[', '5', '~', // page up
		0x1b, '[', '6', '~', // page down
		0x1b, 'O', 'H', // home
		0x1b, '[', '4', '~', // end
		' ', 'f', 0x06, // space, f, ctrl+f
		'\r',
	}
	in = append(in, []byte("é")...)

	dec := NewTerminalDecoder(bytes.NewReader(in))
	var got []Key
	for {
		k, err := dec.ReadKey()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, k)
	}

	assert.Equal(t, []Key{
		{Name: KeyArrowRight},
		{Name: KeyArrowLeft},
		{Name: KeyPageUp},
		{Name: KeyPageDown},
		{Name: KeyHome},
		{Name: KeyEnd},
		{Name: KeySpace},
		{Name: "f"},
		{Name: "f", Ctrl: true},
		{Name: KeyEnter},
		{Name: "é"},
	}, got)
}

func TestTerminalDecoder_LoneEscape(t *testing.T) {
	dec := NewTerminalDecoder(bytes.NewReader([]byte{0x1b}))
	k, err := dec.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, KeyEscape, k.Name)
}
