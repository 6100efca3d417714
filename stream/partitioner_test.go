package stream_test

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dakusui/cmdstreamer/stream"
)

// firstByteKey hashes a line by its first byte, mimicking an identity
// hash over single-letter data.
func firstByteKey(line string) int {
	if line == "" {
		return 0
	}
	return int(line[0])
}

// trailingNumberKey keys "prefix-N" lines by N.
func trailingNumberKey(line string) int {
	i := strings.LastIndex(line, "-")
	n, _ := strconv.Atoi(line[i+1:])
	return n
}

func TestPartitionUnionAndPerPartitionOrder(t *testing.T) {
	in := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	p := stream.NewPartitioner(stream.Of(in...), 2, 100, firstByteKey)
	downstreams := p.Sequences()
	assert.Len(t, downstreams, 2)

	parts := make([][]string, 2)
	var wg sync.WaitGroup
	for i := range downstreams {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			parts[i] = drain(downstreams[i])
		}()
	}
	wg.Wait()

	var union []string
	for _, part := range parts {
		assert.True(t, subsequenceOf(part, in),
			"partition %v is not a subsequence of the input", part)
		union = append(union, part...)
	}
	assert.Equal(t, multiset(in), multiset(union))
}

func TestPartitionManyWaysTinyQueues(t *testing.T) {
	const n = 10_000
	p := stream.NewPartitioner(dataStream("A", n), 6, 1, trailingNumberKey)
	pattern := regexp.MustCompile(`^A-[0-9]+$`)

	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0
	for _, s := range p.Sequences() {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			lines := drain(s)
			for _, line := range lines {
				if !pattern.MatchString(line) {
					t.Errorf("unexpected line %q", line)
					return
				}
			}
			mu.Lock()
			total += len(lines)
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, n, total)
}

func TestPartitionDeterministicByKey(t *testing.T) {
	const n, ways = 1_000, 4
	p := stream.NewPartitioner(dataStream("k", n), ways, 10, trailingNumberKey)
	downstreams := p.Sequences()
	parts := make([][]string, ways)
	var wg sync.WaitGroup
	for i := range downstreams {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			parts[i] = drain(downstreams[i])
		}()
	}
	wg.Wait()
	for i, part := range parts {
		for _, line := range part {
			assert.Equal(t, i, trailingNumberKey(line)%ways,
				"line %q landed in partition %d", line, i)
		}
	}
}

func TestPartitionIntoMergerRoundTrip(t *testing.T) {
	const n = 100_000
	p := stream.NewPartitioner(dataStream("data", n), 4, 100, trailingNumberKey)
	out := drain(stream.NewMerger(100, p.Sequences()...).Merge())
	assert.Len(t, out, n)
	assert.Equal(t, multiset(dataLines("data", n)), multiset(out))
}

func TestPartitionMergeRoundTripIsPermutation(t *testing.T) {
	in := dataLines("r", 500)
	testCases := map[string]struct {
		n, q int
	}{
		"single partition":  {n: 1, q: 1},
		"two tiny queues":   {n: 2, q: 1},
		"three wide queues": {n: 3, q: 64},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			p := stream.NewPartitioner(
				stream.Of(in...), tc.n, tc.q, trailingNumberKey)
			out := drain(stream.NewMerger(tc.q, p.Sequences()...).Merge())
			assert.Equal(t, multiset(in), multiset(out))
		})
	}
}

func TestPartitionClosedDownstreamIsLossy(t *testing.T) {
	const n, ways = 1_000, 2
	p := stream.NewPartitioner(dataStream("c", n), ways, 1, trailingNumberKey)
	downstreams := p.Sequences()

	// Abandon the odd partition immediately; its lines get dropped.
	assert.NoError(t, downstreams[1].Close())

	// The open side still receives all of its lines, in order.
	lines := dataLines("c", n)
	var evens []string
	for i := 0; i < n; i += 2 {
		evens = append(evens, lines[i])
	}
	assert.Equal(t, evens, drain(downstreams[0]))
}

func TestPartitionAllDownstreamsClosedReleasesInput(t *testing.T) {
	src := &endless{prefix: "inf"}
	p := stream.NewPartitioner(src, 3, 1, trailingNumberKey)
	for _, s := range p.Sequences() {
		assert.NoError(t, s.Close())
	}
	assert.Eventually(t, src.isClosed, timeOutLong, tick)
}
