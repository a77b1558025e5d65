package helper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
)

func Test_LogRecordMatcher_MatchesAnyRecordSatisfyingTheWholeChain(t *testing.T) {
	// arrange
	logHandler := helper.NewLogHandlerSpy(false)
	logger := logHandler.NewLogger()

	// act
	logger.Warn("recording failed", "event_type", "MemberRegistered")
	logger.Warn("recording failed", "event_type", "BookIssued", "error", "journal unavailable")

	// assert
	assert.True(t, logHandler.HasWarnLogWithMessage("recording failed").WithAttr("event_type", "MemberRegistered").Assert())
	assert.True(t, logHandler.HasWarnLogWithMessage("recording failed").WithAttr("event_type", "BookIssued").Assert())
	assert.True(t, logHandler.HasWarnLogWithMessage("recording failed").
		WithAttr("event_type", "BookIssued").WithKey("error").Assert())
	assert.False(t, logHandler.HasWarnLogWithMessage("recording failed").
		WithAttr("event_type", "MemberRegistered").WithKey("error").Assert())
	assert.False(t, logHandler.HasWarnLogWithMessage("recording failed").WithAttr("event_type", "BookReturned").Assert())
	assert.False(t, logHandler.HasInfoLogWithMessage("recording failed").Assert())
}
