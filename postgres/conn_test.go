package postgres_test

import (
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/postgres"
)

type widget struct {
	ID   int64
	Name string
}

func (suite *PoolTestSuite) TestAcquire() {
	// Arrange
	suite.mock.ExpectExec("UPDATE widgets").
		WithArgs("new", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	conn := suite.acquire()
	err := conn.DB().Exec("UPDATE widgets SET name = ? WHERE id = ?", "new", 1)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Nil(conn.Release())
	suite.Require().True(conn.Released())
}

func (suite *PoolTestSuite) TestRelease() {
	// Arrange
	var calls int
	conn := postgres.NewConn(suite.pool.DB().DB(), func() error { calls++; return nil })

	// Act
	suite.Require().Nil(conn.Release())
	suite.Require().Nil(conn.Release())

	// Assert
	suite.Require().Equal(1, calls)
	suite.Require().True(conn.Released())
}

func (suite *PoolTestSuite) TestReleaseErr() {
	// Arrange
	conn := postgres.NewConn(suite.pool.DB().DB(), func() error { return testErr })

	// Act
	err := conn.Release()

	// Assert
	suite.Require().ErrorIs(err, testErr)
	suite.Require().Nil(conn.Release())
}

func (suite *PoolTestSuite) TestBeginCommit() {
	// Arrange
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("DELETE FROM widgets").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	conn := suite.acquire()
	defer conn.Release()

	// Act
	tx, err := conn.Begin(suite.T().Context(), "user-1")
	suite.Require().Nil(err)
	suite.Require().Equal("user-1", tx.UserID)

	err = conn.DB().Exec("DELETE FROM widgets WHERE id = ?", 7)
	suite.Require().Nil(err)

	// Assert
	suite.Require().Nil(tx.Commit())
	suite.Require().ErrorIs(tx.Commit(), postgres.ErrTxDone)
	suite.Require().Nil(tx.Rollback())
}

func (suite *PoolTestSuite) TestBeginRollback() {
	// Arrange
	suite.mock.ExpectBegin()
	suite.mock.ExpectRollback()

	conn := suite.acquire()
	defer conn.Release()

	// Act
	tx, err := conn.Begin(suite.T().Context(), "user-1")
	suite.Require().Nil(err)

	_, err = conn.Begin(suite.T().Context(), "user-1")
	suite.Require().ErrorIs(err, waypoint.ErrNotValid)

	// Assert
	suite.Require().Nil(tx.Rollback())
	suite.Require().Nil(tx.Rollback())
	suite.Require().ErrorIs(tx.Commit(), postgres.ErrTxDone)
}

func (suite *PoolTestSuite) TestReleaseRollsBack() {
	// Arrange
	suite.mock.ExpectBegin()
	suite.mock.ExpectRollback()

	conn := suite.acquire()
	_, err := conn.Begin(suite.T().Context(), "user-1")
	suite.Require().Nil(err)

	// Act
	err = conn.Release()

	// Assert
	suite.Require().Nil(err)

	_, err = conn.Begin(suite.T().Context(), "user-1")
	suite.Require().ErrorIs(err, waypoint.ErrNotValid)
}

func (suite *PoolTestSuite) TestBeginErr() {
	// Arrange
	suite.mock.ExpectBegin().WillReturnError(testErr)

	conn := suite.acquire()
	defer conn.Release()

	// Act
	tx, err := conn.Begin(suite.T().Context(), "user-1")

	// Assert
	suite.Require().Nil(tx)
	suite.Require().ErrorIs(err, waypoint.ErrUnexpected)
}
