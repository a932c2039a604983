package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDelete(t *testing.T) {
	deleted := testutil.ToFloat64(PlaysDeletedTotal.WithLabelValues("deleted"))
	missing := testutil.ToFloat64(PlaysDeletedTotal.WithLabelValues("not_found"))

	RecordDelete(true)
	RecordDelete(false)
	RecordDelete(false)

	assert.Equal(t, deleted+1, testutil.ToFloat64(PlaysDeletedTotal.WithLabelValues("deleted")))
	assert.Equal(t, missing+2, testutil.ToFloat64(PlaysDeletedTotal.WithLabelValues("not_found")))
}

func TestRecordList(t *testing.T) {
	before := testutil.ToFloat64(PlaysListTotal.WithLabelValues("invalid_cursor", "true"))

	RecordList("invalid_cursor", true)

	assert.Equal(t, before+1, testutil.ToFloat64(PlaysListTotal.WithLabelValues("invalid_cursor", "true")))
}

func TestRecordLookup(t *testing.T) {
	before := testutil.ToFloat64(PlaysLookupsTotal.WithLabelValues("found"))
	RecordLookup(true)
	assert.Equal(t, before+1, testutil.ToFloat64(PlaysLookupsTotal.WithLabelValues("found")))
}
