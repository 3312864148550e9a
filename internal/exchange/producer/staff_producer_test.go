package producer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama/mocks"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhatjachour/employee-management/internal/dto"
)

func testConfig() Config {
	return Config{
		TopicEmployees: "staff.employee-events",
		TopicManagers:  "staff.manager-events",
		Source:         "staff-dashboard-api",
	}
}

func TestProduceEmployee_EnvelopeShape(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var env Envelope[EmployeePayload]
		if err := json.Unmarshal(val, &env); err != nil {
			return err
		}

		assert.Equal(t, "employee.created", env.Kind)
		assert.Equal(t, "staff-dashboard-api", env.Source)
		assert.NotZero(t, env.MessageID)
		assert.Equal(t, "E001", env.Payload.EmployeeID)
		assert.Equal(t, dto.StatusActive, env.Payload.Status)
		assert.True(t, env.Payload.Salary.Equal(decimal.RequireFromString("75000")))
		return nil
	})

	p := NewStaffProducer(sp, testConfig(), zerolog.Nop())

	err := p.ProduceEmployee(context.Background(), "employee.created", dto.Employee{
		ID:         10,
		FullName:   "Alice Johnson",
		EmployeeID: "E001",
		Email:      "alice@example.com",
		Department: "Engineering",
		HireDate:   "2023-01-15",
		Salary:     decimal.RequireFromString("75000"),
		Status:     dto.StatusActive,
	})
	require.NoError(t, err)

	require.NoError(t, p.Close())
}

func TestProduceManager_EnvelopeShape(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var env Envelope[ManagerPayload]
		if err := json.Unmarshal(val, &env); err != nil {
			return err
		}

		assert.Equal(t, "manager.created", env.Kind)
		assert.Equal(t, "M001", env.Payload.ManagerID)
		assert.Equal(t, dto.LevelSenior, env.Payload.Level)
		return nil
	})

	p := NewStaffProducer(sp, testConfig(), zerolog.Nop())

	err := p.ProduceManager(context.Background(), "manager.created", dto.Manager{
		ID:        1,
		FullName:  "John Doe",
		ManagerID: "M001",
		Email:     "john@example.com",
		Level:     dto.LevelSenior,
	})
	require.NoError(t, err)

	require.NoError(t, p.Close())
}

func TestSend_UninitializedProducer(t *testing.T) {
	var p *StaffProducer

	err := p.send(context.Background(), "t", "k", nil, nil)
	assert.Error(t, err)
	assert.NoError(t, p.Close())
}
