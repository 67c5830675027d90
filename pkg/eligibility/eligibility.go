// Package eligibility estimates sliding scale financial assistance from
// household income and size.
package eligibility

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownIncomeRange   = errors.New("unknown income range")
	ErrUnknownHouseholdSize = errors.New("unknown household size")
)

const DefaultApplicationUrl = "https://static1.squarespace.com/static/54352636e4b03176bba53234/t/67ed3211153f540535644fe6/1743598098804/Sliding+Scale+Application+Form+%26+Survey.pdf"

var IncomeRanges = []string{
	"$0–$25,500",
	"$25,501–$30,500",
	"$30,501–$35,500",
	"$35,501–$40,500",
	"$40,501–$45,500",
	"$45,501–$50,500",
	"$50,501–$55,500",
	"$55,501–$60,500",
	"$60,501–$65,500",
	"$65,501–$70,500",
	"$70,501–$75,500",
	"$75,501–$80,500",
	"$80,501–$85,500",
	"$85,501+",
}

var HouseholdSizes = []string{"1", "2", "3", "4", "5", "6+"}

// matrix[size][incomeRow]
var matrix = map[string][]bool{
	"1":  {true, true, true, true, true, true, true, false, false, false, false, false, false, false},
	"2":  {true, true, true, true, true, true, true, true, false, false, false, false, false, false},
	"3":  {true, true, true, true, true, true, true, true, true, true, true, false, false, false},
	"4":  {true, true, true, true, true, true, true, true, true, true, true, true, false, false},
	"5":  {true, true, true, true, true, true, true, true, true, true, true, true, false, false},
	"6+": {true, true, true, true, true, true, true, true, true, true, true, true, true, false},
}

// HouseholdKey maps a head count to a table column, six or more share one column.
func HouseholdKey(size int) (string, error) {
	switch {
	case size < 1:
		return "", fmt.Errorf("%w: %d", ErrUnknownHouseholdSize, size)
	case size >= 6:
		return "6+", nil
	}
	return strconv.Itoa(size), nil
}

// Eligible looks up one cell of the table.
func Eligible(incomeRow int, household string) (bool, error) {
	row, ok := matrix[household]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownHouseholdSize, household)
	}
	if incomeRow < 0 || incomeRow >= len(row) {
		return false, fmt.Errorf("%w: %d", ErrUnknownIncomeRange, incomeRow)
	}
	return row[incomeRow], nil
}

type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusEligible   Status = "eligible"
	StatusIneligible Status = "ineligible"
)

type Estimate struct {
	Status         Status `json:"status"`
	IncomeRange    string `json:"incomeRange,omitempty"`
	HouseholdSize  string `json:"householdSize,omitempty"`
	Message        string `json:"message"`
	ApplicationUrl string `json:"applicationUrl,omitempty"`
}

const (
	incompleteMessage = "Select an income range and a household size to see your estimated eligibility."
	eligibleMessage   = "You are likely eligible for financial assistance with our sliding scale program. Find out exactly how much you could save by filling out the application."
	ineligibleMessage = "You likely do not qualify for financial assistance with our sliding scale program, but if you'd like to confirm, please provide us with more details by submitting the application."
)

type Estimator struct {
	ApplicationUrl string
}

func NewEstimator(applicationUrl string) *Estimator {
	if applicationUrl == "" {
		applicationUrl = DefaultApplicationUrl
	}
	return &Estimator{ApplicationUrl: applicationUrl}
}

// Estimate takes the raw form values. Either value missing yields an
// incomplete estimate, malformed values are errors.
func (e *Estimator) Estimate(incomeRow, household string) (Estimate, error) {
	incomeRow = strings.TrimSpace(incomeRow)
	household = strings.TrimSpace(household)
	if incomeRow == "" || household == "" {
		return Estimate{Status: StatusIncomplete, Message: incompleteMessage}, nil
	}
	row, err := strconv.Atoi(incomeRow)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %q", ErrUnknownIncomeRange, incomeRow)
	}
	if n, err := strconv.Atoi(household); err == nil {
		if household, err = HouseholdKey(n); err != nil {
			return Estimate{}, err
		}
	}
	ok, err := Eligible(row, household)
	if err != nil {
		return Estimate{}, err
	}
	ret := Estimate{
		Status:         StatusIneligible,
		IncomeRange:    IncomeRanges[row],
		HouseholdSize:  household,
		Message:        ineligibleMessage,
		ApplicationUrl: e.ApplicationUrl,
	}
	if ok {
		ret.Status = StatusEligible
		ret.Message = eligibleMessage
	}
	return ret, nil
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options lists the form choices, income rows are addressed by index.
func Options() (income []Option, household []Option) {
	for i, label := range IncomeRanges {
		income = append(income, Option{Value: strconv.Itoa(i), Label: label})
	}
	for _, size := range HouseholdSizes {
		household = append(household, Option{Value: size, Label: size})
	}
	return income, household
}
