package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository/orm"
)

func newTestRepos(t *testing.T) orm.Repositories {
	t.Helper()
	db, err := orm.Open(orm.Config{Driver: orm.DriverSQLite, Path: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = orm.Close(db) })

	repos := orm.NewRepositories(db)
	require.NoError(t, repos.Init(context.Background()))
	return repos
}

func newTestUserService(t *testing.T) (UserService, orm.Repositories) {
	repos := newTestRepos(t)
	return NewUserService(repos.Users, bcrypt.MinCost), repos
}
