package artifact_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	artifact "github.com/reflekt-labs/reflekt/internal/adapters/artifact"
	"github.com/reflekt-labs/reflekt/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRequest() artifact.Request {
	return artifact.Request{
		Address: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		Score:   82,
		Tier:    "epic",
		Badges:  []string{"Whale", "ENS Owner"},
		Breakdown: model.Breakdown{
			model.CriterionDAOParticipation: 20,
			model.CriterionBalance:          5,
		},
	}
}

func TestInMemoryGenerator(t *testing.T) {
	Convey("Given an artifact generator", t, func() {
		g := artifact.NewInMemoryGenerator()
		ctx := context.Background()

		Convey("When generating for a scored wallet", func() {
			art, err := g.Generate(ctx, sampleRequest())

			Convey("Then both URIs are content addressed", func() {
				So(err, ShouldBeNil)
				So(strings.HasPrefix(art.MetadataURI, "ipfs://"), ShouldBeTrue)
				So(strings.HasPrefix(art.ImageURI, "ipfs://"), ShouldBeTrue)
			})

			Convey("And the metadata document is retrievable and well formed", func() {
				So(err, ShouldBeNil)
				raw, ok := g.Lookup(art.MetadataURI)
				So(ok, ShouldBeTrue)

				var doc struct {
					Name       string `json:"name"`
					Image      string `json:"image"`
					Attributes []struct {
						TraitType string `json:"trait_type"`
						Value     any    `json:"value"`
					} `json:"attributes"`
				}
				So(json.Unmarshal(raw, &doc), ShouldBeNil)
				So(doc.Name, ShouldContainSubstring, "epic")
				So(doc.Image, ShouldEqual, art.ImageURI)

				traits := make(map[string]bool)
				for _, a := range doc.Attributes {
					traits[a.TraitType] = true
				}
				So(traits["Reputation Score"], ShouldBeTrue)
				So(traits["Tier"], ShouldBeTrue)
				So(traits["Achievement"], ShouldBeTrue)
			})

			Convey("And identical requests yield identical URIs", func() {
				again, aerr := g.Generate(ctx, sampleRequest())
				So(aerr, ShouldBeNil)
				So(again.MetadataURI, ShouldEqual, art.MetadataURI)
			})

			Convey("And a different score yields a different URI", func() {
				req := sampleRequest()
				req.Score = 83
				other, oerr := g.Generate(ctx, req)
				So(oerr, ShouldBeNil)
				So(other.MetadataURI, ShouldNotEqual, art.MetadataURI)
			})
		})

		Convey("When the request is incomplete", func() {
			_, err := g.Generate(ctx, artifact.Request{Score: 10})
			So(err, ShouldWrap, artifact.ErrArtifactGeneration)
		})
	})
}
