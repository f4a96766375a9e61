package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListOptions_Normalize(t *testing.T) {
	assert.Equal(t, ListOptions{Page: 1, Limit: DefaultLimit, Order: OrderAsc}, ListOptions{}.Normalize())
	assert.Equal(t, MaxLimit, ListOptions{Limit: 1 << 60}.Normalize().Limit)
	assert.Equal(t, OrderDesc, ListOptions{Order: OrderDesc}.Normalize().Order)
	assert.Equal(t, OrderAsc, ListOptions{Order: "sideways"}.Normalize().Order)
}

func TestListOptions_Offset(t *testing.T) {
	assert.Equal(t, 0, ListOptions{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, ListOptions{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, ListOptions{Page: math.MaxInt, Limit: 10}.Offset())
}

func TestListOptions_PastEnd(t *testing.T) {
	cases := []struct {
		page, limit, total int
		want               bool
	}{
		{1, 10, 0, false},
		{2, 10, 0, true},
		{1, 10, 10, false},
		{2, 10, 10, true},
		{2, 10, 11, false},
		{3, 10, 11, true},
		{math.MaxInt, 10, 11, true},
	}

	for _, tc := range cases {
		got := ListOptions{Page: tc.page, Limit: tc.limit}.PastEnd(tc.total)
		assert.Equal(t, tc.want, got, "page=%d limit=%d total=%d", tc.page, tc.limit, tc.total)
	}
}
