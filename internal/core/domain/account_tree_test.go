package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAccountTree(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "cash", Code: "1010", ParentAccountID: "assets"},
		{AccountID: "root", Code: "00000"},
		{AccountID: "assets", Code: "01000", ParentAccountID: "root"},
		{AccountID: "bank", Code: "1011", ParentAccountID: "cash"},
		{AccountID: "recv", Code: "1100", ParentAccountID: "assets"},
		{AccountID: "equity", Code: "03000", ParentAccountID: "root"},
	}

	tree, err := domain.BuildAccountTree(accounts)
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)

	flat := tree.Flatten()
	codes := make([]string, 0, len(flat))
	for _, a := range flat {
		codes = append(codes, a.Code)
	}
	assert.Equal(t, []string{"00000", "01000", "1010", "1011", "1100", "03000"}, codes)

	bank, ok := tree.FindByCode("1011")
	require.True(t, ok)
	assert.Equal(t, "00000/01000/1010/1011", bank.Account.Path)
	assert.Equal(t, 3, bank.Account.Depth)

	desc := tree.Descendants("01000")
	assert.Len(t, desc, 3)
	assert.Nil(t, tree.Descendants("9999"))
}

func TestBuildAccountTree_Errors(t *testing.T) {
	tests := []struct {
		name     string
		accounts []domain.Account
	}{
		{
			name: "unknown parent",
			accounts: []domain.Account{
				{AccountID: "a", Code: "1"},
				{AccountID: "b", Code: "2", ParentAccountID: "missing"},
			},
		},
		{
			name: "duplicate code",
			accounts: []domain.Account{
				{AccountID: "a", Code: "1"},
				{AccountID: "b", Code: "1"},
			},
		},
		{
			name: "cycle",
			accounts: []domain.Account{
				{AccountID: "root", Code: "0"},
				{AccountID: "a", Code: "1", ParentAccountID: "b"},
				{AccountID: "b", Code: "2", ParentAccountID: "a"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.BuildAccountTree(tt.accounts)
			assert.ErrorIs(t, err, domain.ErrInvalidAccountTree)
		})
	}
}
