package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnGenerateStart(ctx, "abc", 4)
	p.OnGenerateComplete(ctx, "abc", 4, 12, time.Second, nil)
	p.OnEncodeComplete(ctx, "png", 1024, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "variants")
	c.OnCacheMiss(ctx, "palette")
	c.OnCacheSet(ctx, "variants", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/variants")
	h.OnResponse(ctx, "POST", "/v1/variants", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &countingHooks{}
	SetPipelineHooks(custom)
	SetCacheHooks(custom)
	SetHTTPHooks(custom)
	if Pipeline() != PipelineHooks(custom) || Cache() != CacheHooks(custom) || HTTP() != HTTPHooks(custom) {
		t.Error("Set*Hooks should install custom hooks")
	}

	Cache().OnCacheHit(context.Background(), "variants")
	if custom.hits != 1 {
		t.Errorf("hits = %d, want 1", custom.hits)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &countingHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(custom) {
		t.Error("SetPipelineHooks(nil) should keep existing hooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(l)
	ctx := context.Background()

	h.OnGenerateComplete(ctx, "0123456789abcdef0123", 3, 7, time.Millisecond, nil)
	h.OnCacheMiss(ctx, "variants")
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"generate done", "0123456789ab", "cache miss", "/healthz"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef0123") {
		t.Error("image hash should be shortened")
	}
}

type countingHooks struct {
	NoopPipelineHooks
	NoopHTTPHooks
	hits int
}

func (c *countingHooks) OnCacheHit(context.Context, string)      { c.hits++ }
func (c *countingHooks) OnCacheMiss(context.Context, string)     {}
func (c *countingHooks) OnCacheSet(context.Context, string, int) {}
