package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess  = "success"
	ResultDenied   = "denied"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_directory_login_attempts_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	callerChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_directory_caller_checks_total",
		Help: "Authorization header checks by result",
	}, []string{"result"})

	userSkillWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_directory_user_skill_writes_total",
		Help: "User skill assignment writes by operation and result",
	}, []string{"operation", "result"})
)

func RecordLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

func RecordCallerCheck(result string) {
	callerChecks.WithLabelValues(result).Inc()
}

func RecordUserSkillWrite(operation, result string) {
	userSkillWrites.WithLabelValues(operation, result).Inc()
}
