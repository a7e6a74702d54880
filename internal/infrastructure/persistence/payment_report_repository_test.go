package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPaymentReportRepository_FindPayments(t *testing.T) {
	columns := []string{
		"repayment_id", "loan_id", "debtor_id", "debtor_name",
		"amount", "method", "note", "paid_on",
	}

	t.Run("maps joined rows into records", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentReportRepository(gormDB)

		repaymentID := uuid.New()
		loanID := uuid.New()
		debtorID := uuid.New()
		paidOn := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(columns).
			AddRow(repaymentID, loanID, debtorID, "Jordan Doe", "88.85", "bank_transfer", "", paidOn)

		mock.ExpectQuery(`SELECT .* FROM "repayments" JOIN loans ON loans.id = repayments.loan_id JOIN debtors ON debtors.id = loans.debtor_id ORDER BY repayments.paid_on DESC`).
			WillReturnRows(rows)

		records, err := repo.FindPayments(context.Background(), report.PaymentReportFilter{})

		assert.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, repaymentID, records[0].RepaymentID)
		assert.Equal(t, "Jordan Doe", records[0].DebtorName)
		assert.Equal(t, "88.85", records[0].Amount.StringFixed(2))
		assert.True(t, paidOn.Equal(records[0].PaidOn))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies date range, creditor filter and limit", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentReportRepository(gormDB)

		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
		creditorID := uuid.New()

		mock.ExpectQuery(`SELECT .* FROM "repayments" JOIN loans .* JOIN debtors .* WHERE repayments.paid_on >= \$1 AND repayments.paid_on <= \$2 AND loans.creditor_id = \$3 ORDER BY repayments.paid_on DESC LIMIT \$4`).
			WithArgs(from, to, creditorID, 500).
			WillReturnRows(sqlmock.NewRows(columns))

		records, err := repo.FindPayments(context.Background(), report.PaymentReportFilter{
			From:       &from,
			To:         &to,
			CreditorID: &creditorID,
			Limit:      500,
		})

		assert.NoError(t, err)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
