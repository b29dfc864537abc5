package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(loginAttempts.WithLabelValues(ResultDenied))
	RecordLogin(ResultDenied)
	assert.Equal(t, before+1, testutil.ToFloat64(loginAttempts.WithLabelValues(ResultDenied)))
}

func TestRecordUserSkillWrite(t *testing.T) {
	before := testutil.ToFloat64(userSkillWrites.WithLabelValues("create", ResultConflict))
	RecordUserSkillWrite("create", ResultConflict)
	RecordUserSkillWrite("create", ResultConflict)
	assert.Equal(t, before+2, testutil.ToFloat64(userSkillWrites.WithLabelValues("create", ResultConflict)))
}
