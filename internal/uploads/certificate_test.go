package uploads

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness-backend/internal/intake"
	"readiness-backend/internal/scoring"
)

type certScannerFunc func(ctx context.Context, name string, data []byte) (scoring.CertificateScan, error)

func (f certScannerFunc) ScanCertificate(ctx context.Context, name string, data []byte) (scoring.CertificateScan, error) {
	return f(ctx, name, data)
}

func TestCertificateIdentifiedIsAppended(t *testing.T) {
	flow := NewCertificateFlow(certScannerFunc(func(context.Context, string, []byte) (scoring.CertificateScan, error) {
		return scoring.CertificateScan{
			Identified: true,
			CertName:   "AWS Certified",
			Match:      &scoring.TierMatch{Tier: "gold", TierLabel: "Gold Tier"},
		}, nil
	}))

	var certs intake.List[intake.Certification]
	outcomes := flow.Process(context.Background(), []File{{Name: "aws.pdf", Data: []byte("%PDF")}}, func(c intake.Certification) {
		certs = certs.Append(c)
	})

	require.Len(t, outcomes, 1)
	assert.Equal(t, StateAdded, outcomes[0].State)
	require.Equal(t, 1, certs.Len())
	got, _ := certs.At(0)
	assert.Equal(t, intake.Certification{Name: "AWS Certified", Issuer: "Gold Tier", Year: 2024}, got)
	assert.False(t, flow.Busy())
}

func TestCertificateBatchIsSequentialAndAbsorbsFailures(t *testing.T) {
	var order []string
	flow := NewCertificateFlow(certScannerFunc(func(_ context.Context, name string, _ []byte) (scoring.CertificateScan, error) {
		order = append(order, name)
		switch name {
		case "broken.pdf":
			return scoring.CertificateScan{}, errors.New("connection reset")
		case "blank.pdf":
			return scoring.CertificateScan{Identified: false, Error: "Could not extract text from file."}, nil
		default:
			return scoring.CertificateScan{Identified: true, CertName: name}, nil
		}
	}))

	var added []intake.Certification
	outcomes := flow.Process(context.Background(), []File{
		{Name: "a.pdf"}, {Name: "broken.pdf"}, {Name: "blank.pdf"}, {Name: "b.pdf"},
	}, func(c intake.Certification) { added = append(added, c) })

	assert.Equal(t, []string{"a.pdf", "broken.pdf", "blank.pdf", "b.pdf"}, order)
	require.Len(t, outcomes, 4)
	assert.Equal(t, StateAdded, outcomes[0].State)
	assert.Equal(t, StateFailed, outcomes[1].State)
	assert.Equal(t, "connection reset", outcomes[1].Message)
	assert.Equal(t, StateUnidentified, outcomes[2].State)
	assert.Equal(t, "Could not extract text from file.", outcomes[2].Message)
	assert.Equal(t, StateAdded, outcomes[3].State)

	require.Len(t, added, 2)
	assert.Equal(t, "a.pdf", added[0].Name)
	assert.Equal(t, "", added[0].Issuer, "no match means no tier label")
	assert.False(t, flow.Busy())
}

func TestCertificateBusyRejectsOverlap(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	flow := NewCertificateFlow(certScannerFunc(func(context.Context, string, []byte) (scoring.CertificateScan, error) {
		close(entered)
		<-release
		return scoring.CertificateScan{Identified: true, CertName: "CKA"}, nil
	}))

	done := make(chan []CertificateOutcome)
	go func() {
		done <- flow.Process(context.Background(), []File{{Name: "first.pdf"}}, nil)
	}()
	<-entered

	assert.True(t, flow.Busy())
	second := flow.Process(context.Background(), []File{{Name: "second.pdf"}}, func(intake.Certification) {
		t.Error("busy flow must not add records")
	})
	require.Len(t, second, 1)
	assert.Equal(t, StateBusy, second[0].State)
	assert.Equal(t, ErrScanInFlight.Error(), second[0].Message)
	assert.True(t, Refused(second))

	close(release)
	first := <-done
	assert.Equal(t, StateAdded, first[0].State)
	assert.False(t, Refused(first))
	assert.False(t, flow.Busy())
}
