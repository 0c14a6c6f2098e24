package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tracks-graphql/internal/auth"
	"tracks-graphql/internal/domain"
	gormpersistence "tracks-graphql/internal/infra/persistence/gorm"
	"tracks-graphql/internal/infra/setup"
	"tracks-graphql/internal/metrics"
	"tracks-graphql/internal/service"
)

type SchemaSuite struct {
	suite.Suite
	db     *gorm.DB
	schema *graphql.Schema
	users  *service.UserService
}

func (s *SchemaSuite) SetupTest() {
	db, err := setup.InitDB(setup.DatabaseOptions{Driver: "sqlite", Name: ":memory:"})
	s.Require().NoError(err)
	s.Require().NoError(setup.MigrateDB(db))
	s.db = db

	s.users = service.NewUserService(gormpersistence.NewGormUserRepository(db), bcrypt.MinCost)
	tracks := service.NewTrackService(
		gormpersistence.NewGormTrackRepository(db),
		gormpersistence.NewGormLikeRepository(db),
		service.DefaultTrackPolicies(),
	)
	schema, err := NewSchema(NewResolver(tracks, s.users), 10)
	s.Require().NoError(err)
	s.schema = schema
}

func (s *SchemaSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *SchemaSuite) user(name string) *domain.User {
	u, err := s.users.CreateUser(context.Background(), name, name+"-pw", name+"@example.com")
	s.Require().NoError(err)
	return u
}

func as(u *domain.User) context.Context {
	return auth.WithCaller(context.Background(), u)
}

// exec 执行查询并把 data 解码到 out，返回第一个错误的 code (没有错误时为空)
func (s *SchemaSuite) exec(ctx context.Context, query string, vars map[string]interface{}, out interface{}) string {
	resp := s.schema.Exec(ctx, query, "", vars)
	if out != nil && len(resp.Data) > 0 {
		s.Require().NoError(json.Unmarshal(resp.Data, out))
	}
	if len(resp.Errors) == 0 {
		return ""
	}
	code, _ := resp.Errors[0].Extensions["code"].(string)
	if code == "" {
		code = resp.Errors[0].Message
	}
	return code
}

type trackData struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PostedBy    struct {
		Username string `json:"username"`
	} `json:"postedBy"`
}

const createTrackMutation = `mutation($title: String, $description: String, $url: String) {
	createTrack(title: $title, description: $description, url: $url) {
		track { id title description url postedBy { username } }
	}
}`

func (s *SchemaSuite) createTrack(owner *domain.User, title, description, url string) trackData {
	var out struct {
		CreateTrack struct{ Track trackData } `json:"createTrack"`
	}
	code := s.exec(as(owner), createTrackMutation, map[string]interface{}{
		"title": title, "description": description, "url": url,
	}, &out)
	s.Require().Empty(code)
	return out.CreateTrack.Track
}

func (s *SchemaSuite) TestScenario_OwnerSearchAndForeignUpdate() {
	alice, bob := s.user("alice"), s.user("bob")

	created := s.createTrack(alice, "Song A", "", "http://x")
	s.Equal("alice", created.PostedBy.Username)

	var list struct {
		AllTracks []trackData `json:"allTracks"`
	}
	s.Empty(s.exec(context.Background(), `{ allTracks(search: "Song") { id title url postedBy { username } } }`, nil, &list))
	s.Require().Len(list.AllTracks, 1)
	s.Equal(created.ID, list.AllTracks[0].ID)

	var upd struct {
		UpdateTrack *struct{ Track trackData } `json:"updateTrack"`
	}
	code := s.exec(as(bob), fmt.Sprintf(`mutation { updateTrack(trackId: %s, title: "new", description: "desc") { track { title } } }`, created.ID), nil, &upd)
	s.Equal(CodePermissionDenied, code)
	s.Nil(upd.UpdateTrack)
}

func (s *SchemaSuite) TestSearch_MatchesAnyFieldCaseSensitive() {
	alice, foober := s.user("alice"), s.user("foober")
	s.createTrack(alice, "foo title", "", "http://a")
	s.createTrack(alice, "b", "a foo description", "http://b")
	s.createTrack(alice, "c", "", "http://foo.c")
	s.createTrack(foober, "d", "", "http://d")
	s.createTrack(alice, "FOO", "Foo", "http://FOO")

	var list struct {
		AllTracks []trackData `json:"allTracks"`
	}
	s.Empty(s.exec(context.Background(), `query($q: String) { allTracks(search: $q) { title } }`, map[string]interface{}{"q": "foo"}, &list))
	titles := []string{}
	for _, t := range list.AllTracks {
		titles = append(titles, t.Title)
	}
	s.Equal([]string{"foo title", "b", "c", "d"}, titles)

	s.Empty(s.exec(context.Background(), `{ allTracks { title } }`, nil, &list))
	s.Len(list.AllTracks, 5)
}

func (s *SchemaSuite) TestAnonymousCallersAreDenied() {
	alice := s.user("alice")
	track := s.createTrack(alice, "t", "d", "u")
	anon := context.Background()

	s.Equal(CodePermissionDenied, s.exec(anon, createTrackMutation, map[string]interface{}{"title": "x"}, nil))
	s.Equal(CodePermissionDenied, s.exec(anon, fmt.Sprintf(`mutation { createLike(trackId: %s) { track { id } } }`, track.ID), nil, nil))
	s.Equal(CodePermissionDenied, s.exec(anon, `{ me { id } }`, nil, nil))
	s.Equal(CodePermissionDenied, s.exec(anon, fmt.Sprintf(`mutation { deleteTrack(trackId: %s) { trackId } }`, track.ID), nil, nil))
	// 匿名点赞不存在的曲目，仍先报权限错误
	s.Equal(CodePermissionDenied, s.exec(anon, `mutation { createLike(trackId: 999) { track { id } } }`, nil, nil))
}

func (s *SchemaSuite) TestDeleteThenUpdateIsNotFound() {
	alice, bob := s.user("alice"), s.user("bob")
	track := s.createTrack(alice, "t", "d", "u")

	s.Equal(CodePermissionDenied, s.exec(as(bob), fmt.Sprintf(`mutation { deleteTrack(trackId: %s) { trackId } }`, track.ID), nil, nil))

	var del struct {
		DeleteTrack struct {
			TrackID int `json:"trackId"`
		} `json:"deleteTrack"`
	}
	s.Empty(s.exec(as(alice), fmt.Sprintf(`mutation { deleteTrack(trackId: %s) { trackId } }`, track.ID), nil, &del))
	s.Equal(track.ID, fmt.Sprint(del.DeleteTrack.TrackID))

	s.Equal(CodeNotFound, s.exec(as(alice), fmt.Sprintf(`mutation { updateTrack(trackId: %s, title: "x") { track { id } } }`, track.ID), nil, nil))
	s.Equal(CodeNotFound, s.exec(as(alice), fmt.Sprintf(`mutation { deleteTrack(trackId: %s) { trackId } }`, track.ID), nil, nil))
	s.Equal(CodeNotFound, s.exec(as(alice), `mutation { updateTrack(trackId: -1, title: "x") { track { id } } }`, nil, nil))
}

func (s *SchemaSuite) TestUpdateOverwritesOmittedFields() {
	alice := s.user("alice")
	track := s.createTrack(alice, "old", "old description", "http://keep")

	var upd struct {
		UpdateTrack struct{ Track trackData } `json:"updateTrack"`
	}
	s.Empty(s.exec(as(alice), fmt.Sprintf(`mutation { updateTrack(trackId: %s, title: "new") { track { title description url postedBy { username } } } }`, track.ID), nil, &upd))
	s.Equal("new", upd.UpdateTrack.Track.Title)
	s.Equal("", upd.UpdateTrack.Track.Description)
	s.Equal("http://keep", upd.UpdateTrack.Track.URL)
	s.Equal("alice", upd.UpdateTrack.Track.PostedBy.Username)
}

func (s *SchemaSuite) TestLikes() {
	alice, bob := s.user("alice"), s.user("bob")
	track := s.createTrack(alice, "t", "d", "u")

	var like struct {
		CreateLike struct {
			User  struct{ Username string } `json:"user"`
			Track struct{ ID string }       `json:"track"`
		} `json:"createLike"`
	}
	mutation := fmt.Sprintf(`mutation { createLike(trackId: %s) { user { username } track { id } } }`, track.ID)
	s.Empty(s.exec(as(bob), mutation, nil, &like))
	s.Equal("bob", like.CreateLike.User.Username)
	s.Equal(track.ID, like.CreateLike.Track.ID)
	s.Empty(s.exec(as(bob), mutation, nil, nil), "重复点赞不受限制")

	s.Equal(CodeNotFound, s.exec(as(bob), `mutation { createLike(trackId: 999) { track { id } } }`, nil, nil))

	var likes struct {
		Likes []struct {
			User  struct{ Username string } `json:"user"`
			Track struct {
				Title    string                    `json:"title"`
				PostedBy struct{ Username string } `json:"postedBy"`
			} `json:"track"`
		} `json:"likes"`
	}
	s.Empty(s.exec(context.Background(), `{ likes { user { username } track { title postedBy { username } } } }`, nil, &likes))
	s.Require().Len(likes.Likes, 2)
	s.Equal("bob", likes.Likes[0].User.Username)
	s.Equal("alice", likes.Likes[0].Track.PostedBy.Username)

	var nested struct {
		AllTracks []struct {
			Likes []struct{ ID string } `json:"likes"`
		} `json:"allTracks"`
		UserByName struct {
			LikeSet []struct{ ID string } `json:"likeSet"`
		} `json:"userByName"`
	}
	s.Empty(s.exec(context.Background(), `{ allTracks { likes { id } } userByName(username: "bob") { likeSet { id } } }`, nil, &nested))
	s.Require().Len(nested.AllTracks, 1)
	s.Len(nested.AllTracks[0].Likes, 2)
	s.Len(nested.UserByName.LikeSet, 2)
}

func (s *SchemaSuite) TestCreateUserStoresHashedPassword() {
	var created struct {
		CreateUser struct {
			User struct {
				ID       string `json:"id"`
				Username string `json:"username"`
			} `json:"user"`
		} `json:"createUser"`
	}
	s.Empty(s.exec(context.Background(), `mutation { createUser(username: "carol", password: "plain", email: "c@example.com") { user { id username } } }`, nil, &created))
	s.Equal("carol", created.CreateUser.User.Username)

	var byName struct {
		UserByName struct {
			ID       string `json:"id"`
			Password string `json:"password"`
			Email    string `json:"email"`
		} `json:"userByName"`
	}
	s.Empty(s.exec(context.Background(), `{ userByName(username: "carol") { id password email } }`, nil, &byName))
	s.Equal(created.CreateUser.User.ID, byName.UserByName.ID)
	s.NotEqual("plain", byName.UserByName.Password)
	s.Equal("c@example.com", byName.UserByName.Email)

	s.Equal(CodeValidation, s.exec(context.Background(), `mutation { createUser(username: "carol", password: "x", email: "d@example.com") { user { id } } }`, nil, nil))
}

func (s *SchemaSuite) TestUserLookups() {
	alice := s.user("alice")

	var out struct {
		User struct{ Username string } `json:"user"`
		Me   struct{ Username string } `json:"me"`
	}
	s.Empty(s.exec(as(alice), fmt.Sprintf(`{ user(id: %d) { username } me { username } }`, alice.ID), nil, &out))
	s.Equal("alice", out.User.Username)
	s.Equal("alice", out.Me.Username)

	var missing struct {
		User *struct{ Username string } `json:"user"`
	}
	s.Equal(CodeNotFound, s.exec(context.Background(), `{ user(id: 999) { username } }`, nil, &missing))
	s.Nil(missing.User)
	s.Equal(CodeNotFound, s.exec(context.Background(), `{ userByName(username: "nobody") { username } }`, nil, nil))
}

func (s *SchemaSuite) TestRootFieldsAreCountedByFieldName() {
	okBefore := testutil.ToFloat64(metrics.GraphQLOperations.WithLabelValues("allTracks", "ok"))
	deniedBefore := testutil.ToFloat64(metrics.GraphQLOperations.WithLabelValues("me", CodePermissionDenied))

	resp := s.schema.Exec(context.Background(), `query WhateverTheClientCallsIt { allTracks { id } }`, "WhateverTheClientCallsIt", nil)
	s.Empty(resp.Errors)
	s.Equal(CodePermissionDenied, s.exec(context.Background(), `{ me { id } }`, nil, nil))

	s.Equal(okBefore+1, testutil.ToFloat64(metrics.GraphQLOperations.WithLabelValues("allTracks", "ok")))
	s.Equal(deniedBefore+1, testutil.ToFloat64(metrics.GraphQLOperations.WithLabelValues("me", CodePermissionDenied)))
}

func TestSchemaSuite(t *testing.T) {
	suite.Run(t, new(SchemaSuite))
}
