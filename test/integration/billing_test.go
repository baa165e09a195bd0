//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/fivetwenty-io/lago-client/pkg/lagoclient"
)

// BillingIntegrationTestSuite drives a customer from creation to metered usage.
type BillingIntegrationTestSuite struct {
	suite.Suite

	client lago.Client
	ctx    context.Context

	customerID     string
	metricCode     string
	planCode       string
	subscriptionID string
}

func (s *BillingIntegrationTestSuite) SetupSuite() {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(s.T())

	client, err := lagoclient.NewWithEndpoint(config.APIURL, config.APIKey)
	s.Require().NoError(err)

	s.client = client
	s.ctx = context.Background()
	s.customerID = GenerateTestName("cus")
	s.metricCode = GenerateTestName("api_calls")
	s.planCode = GenerateTestName("plan")
	s.subscriptionID = GenerateTestName("sub")
}

func (s *BillingIntegrationTestSuite) TearDownSuite() {
	if s.client == nil {
		return
	}

	_, _ = s.client.Subscriptions().Terminate(s.ctx, s.subscriptionID)
	_, _ = s.client.Customers().Delete(s.ctx, s.customerID)
	_, _ = s.client.Plans().Delete(s.ctx, s.planCode)
	_, _ = s.client.BillableMetrics().Delete(s.ctx, s.metricCode)
}

func (s *BillingIntegrationTestSuite) TestUsageLifecycle() {
	customer, err := s.client.Customers().Create(s.ctx, &lago.CustomerInput{
		ExternalID: s.customerID,
		Name:       "Integration Customer",
		Currency:   "USD",
	})
	s.Require().NoError(err)
	s.Equal(s.customerID, customer.ExternalID)

	metric, err := s.client.BillableMetrics().Create(s.ctx, &lago.BillableMetricInput{
		Name:            "API calls",
		Code:            s.metricCode,
		AggregationType: "count_agg",
	})
	s.Require().NoError(err)

	_, err = s.client.Plans().Create(s.ctx, &lago.PlanInput{
		Name:           "Integration Plan",
		Code:           s.planCode,
		Interval:       "monthly",
		AmountCents:    1000,
		AmountCurrency: "USD",
		Charges: []lago.ChargeInput{{
			BillableMetricID: metric.LagoID,
			ChargeModel:      "standard",
			Properties:       map[string]any{"amount": "0.01"},
		}},
	})
	s.Require().NoError(err)

	subscription, err := s.client.Subscriptions().Create(s.ctx, &lago.SubscriptionInput{
		ExternalCustomerID: s.customerID,
		PlanCode:           s.planCode,
		ExternalID:         s.subscriptionID,
	})
	s.Require().NoError(err)
	s.Equal("active", subscription.Status)

	events, err := s.client.Events().BatchCreate(s.ctx, []lago.EventInput{
		{ExternalSubscriptionID: s.subscriptionID, Code: s.metricCode},
		{ExternalSubscriptionID: s.subscriptionID, Code: s.metricCode},
	})
	s.Require().NoError(err)
	s.Len(events, 2)

	WaitForCondition(s.T(), func() bool {
		usage, err := s.client.Customers().CurrentUsage(s.ctx, s.customerID, s.subscriptionID)

		return err == nil && usage.AmountCents > 0
	}, 30*time.Second, "usage to be aggregated")
}

func (s *BillingIntegrationTestSuite) TestNotFound() {
	_, err := s.client.Customers().Get(s.ctx, GenerateTestName("missing"))
	s.Require().Error(err)
	s.True(lago.IsNotFound(err))
}

func TestBillingIntegrationSuite(t *testing.T) {
	suite.Run(t, new(BillingIntegrationTestSuite))
}
