package discovery_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"jurify/internal/discovery"
	"jurify/internal/discovery/mocks"
	dErrors "jurify/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	catalog *mocks.MockCatalog
	service *discovery.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.catalog = mocks.NewMockCatalog(s.ctrl)
	s.service = discovery.NewService(s.catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestSearchLawyers() {
	s.Run("filters the catalog on every call", func() {
		s.catalog.EXPECT().Lawyers(gomock.Any()).Return([]discovery.Lawyer{
			{ID: 1, Name: "Adv. Priya Sharma", Score: 98, State: "Maharashtra"},
			{ID: 2, Name: "Adv. Rahul Verma", Score: 92, State: "Delhi"},
		}, nil).Times(2)

		first, err := s.service.SearchLawyers(context.Background(), discovery.LawyerFilter{State: "Delhi"})
		s.Require().NoError(err)
		s.Equal(1, first.Total)

		second, err := s.service.SearchLawyers(context.Background(), discovery.LawyerFilter{})
		s.Require().NoError(err)
		s.Equal(2, second.Total)
	})

	s.Run("catalog failure is internal", func() {
		s.catalog.EXPECT().Lawyers(gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := s.service.SearchLawyers(context.Background(), discovery.LawyerFilter{})

		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestSearchNGOs() {
	s.Run("catalog failure is internal", func() {
		s.catalog.EXPECT().NGOs(gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := s.service.SearchNGOs(context.Background(), discovery.NGOFilter{})

		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
