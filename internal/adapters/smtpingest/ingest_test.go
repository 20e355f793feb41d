package smtpingest

import (
	"strings"
	"testing"

	"github.com/riskdash/riskdash/internal/core"
)

func TestTagMessage(t *testing.T) {
	session := &smtpSession{
		ingest: &Ingest{
			statusHeader: "X-Risk-Status",
			scoreHeader:  "X-Risk-Score",
			flagsHeader:  "X-Risk-Flags",
		},
	}

	raw := []byte("Subject: hello\r\n\r\nbody\r\n")
	rec := &core.ScanRecord{
		Verdict: core.Verdict{
			Result:    core.ResultSpam,
			RiskScore: 87,
			Flags:     []string{"Urgency language", "Monetary offers"},
		},
	}

	tagged := string(session.tagMessage(raw, rec))

	if !strings.HasPrefix(tagged, "X-Risk-Status: spam\r\n") {
		t.Errorf("status header missing or misplaced:\n%s", tagged)
	}
	if !strings.Contains(tagged, "X-Risk-Score: 87\r\n") {
		t.Errorf("score header missing:\n%s", tagged)
	}
	if !strings.Contains(tagged, "X-Risk-Flags: Urgency language; Monetary offers\r\n") {
		t.Errorf("flags header missing:\n%s", tagged)
	}
	if !strings.HasSuffix(tagged, string(raw)) {
		t.Errorf("original message altered:\n%s", tagged)
	}
}

func TestTagMessage_NoFlagsHeaderWhenClean(t *testing.T) {
	session := &smtpSession{
		ingest: &Ingest{
			statusHeader: "X-Risk-Status",
			scoreHeader:  "X-Risk-Score",
			flagsHeader:  "X-Risk-Flags",
		},
	}

	rec := &core.ScanRecord{
		Verdict: core.Verdict{Result: core.ResultClean, RiskScore: 10, Flags: []string{}},
	}
	tagged := string(session.tagMessage([]byte("Subject: hi\r\n\r\nok\r\n"), rec))

	if strings.Contains(tagged, "X-Risk-Flags") {
		t.Errorf("clean message should carry no flags header:\n%s", tagged)
	}
}
