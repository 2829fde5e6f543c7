package models

import "time"

// Profile is the payload of /user/get-profile.
type Profile struct {
	UserID          string `json:"userId"`
	FullName        string `json:"fullname"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	WithdrawAddress string `json:"withdrawAddress"`
}

// ProfileUpdate is the body of /user/update-profile. Empty fields are omitted
// and left unchanged by the backend.
type ProfileUpdate struct {
	FullName          string `json:"fullname,omitempty"`
	WithdrawalAddress string `json:"withdrawalAddress,omitempty"`
	Phone             string `json:"phone,omitempty"`
}

// Bonuses groups the income totals shown on the dashboard.
type Bonuses struct {
	DirectBonus    float64 `json:"directBonus"`
	FirstDeposit   float64 `json:"firstDeposit"`
	DailyBonus     float64 `json:"dailyBonus"`
	TeamCommission float64 `json:"teamCommission"`
}

// Dashboard is the payload of /user/get-dashboard. All amounts are computed
// by the backend.
type Dashboard struct {
	TotalInvestment   float64 `json:"totalInvestment"`
	USDTBalance       float64 `json:"usdtBalance"`
	DepositBalance    float64 `json:"depositBalance"`
	DirectTeamCount   int     `json:"directTeamCount"`
	DirectActiveTeam  int     `json:"directActiveTeam"`
	TotalIncomeEarned float64 `json:"totalIncomeEarned"`
	USDTWithdrawTotal float64 `json:"usdtWithdrawTotal"`
	Bonuses           Bonuses `json:"bonuses"`
}

// Wallet is the payload of /user/get-wallet.
type Wallet struct {
	USDTBalance    float64 `json:"USDTBalance"`
	DepositBalance float64 `json:"depositBalance"`
}

// Package is one purchased investment package.
type Package struct {
	PackageAmount float64   `json:"packageAmount"`
	StartDate     time.Time `json:"startDate"`
	Status        string    `json:"status"`
}

// Transaction is one wallet ledger row.
type Transaction struct {
	CreditedAmount    float64   `json:"creditedAmount"`
	DebitedAmount     float64   `json:"debitedAmount"`
	TransactionRemark string    `json:"transactionRemark"`
	Type              string    `json:"type"`
	WalletName        string    `json:"walletName"`
	Status            string    `json:"status,omitempty"`
	ToAddress         string    `json:"toAddress,omitempty"`
	TxHash            string    `json:"txHash,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Amount is the signed ledger amount: credits positive, debits negative.
func (t Transaction) Amount() float64 {
	if t.CreditedAmount > 0 {
		return t.CreditedAmount
	}
	return -t.DebitedAmount
}

// TransactionFilter selects rows of /transaction/get-transaction. Empty
// fields do not filter.
type TransactionFilter struct {
	TransactionRemark string `json:"transactionRemark"`
	Type              string `json:"type"`
	WalletName        string `json:"walletName"`
}

// Referral is one member of the downline returned by /referral/getreferrals.
type Referral struct {
	UserID           string    `json:"userId"`
	Name             string    `json:"name"`
	Referrer         string    `json:"referrer"`
	RegistrationDate time.Time `json:"registrationDate"`
	InvestmentAmount float64   `json:"investmentAmount"`
	Level            int       `json:"level"`
}

// TeamBusiness is the payload of /referral/get-team-business.
type TeamBusiness struct {
	TotalBusiness float64 `json:"totalBusiness"`
}

// DepositAddress is the payload of /deposit/get-deposit-address.
type DepositAddress struct {
	Address string `json:"address"`
	Network string `json:"network,omitempty"`
}

// Registration is the input of the sign-up flow.
type Registration struct {
	FullName        string
	Phone           string
	Email           string
	Referrer        string
	Password        string
	ConfirmPassword string
}

// RegistrationResult is what the backend returns for a new account.
type RegistrationResult struct {
	UserID  string
	Message string
}
