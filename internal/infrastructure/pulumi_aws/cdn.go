package pulumi_aws

import (
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/cloudfront"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

const siteOriginID = "site-bucket-origin"

func newDistribution(ctx *pulumi.Context, args SiteArgs, siteBucket, logBucket *s3.BucketV2) (*cloudfront.Distribution, error) {
	aliases := pulumi.StringArray{}
	for _, d := range args.Domains {
		aliases = append(aliases, pulumi.String(d))
	}

	restriction := &cloudfront.DistributionRestrictionsGeoRestrictionArgs{
		RestrictionType: pulumi.String("none"),
	}
	if len(args.GeoWhitelist) > 0 {
		locations := pulumi.StringArray{}
		for _, l := range args.GeoWhitelist {
			locations = append(locations, pulumi.String(l))
		}
		restriction = &cloudfront.DistributionRestrictionsGeoRestrictionArgs{
			RestrictionType: pulumi.String("whitelist"),
			Locations:       locations,
		}
	}

	return cloudfront.NewDistribution(ctx, "site-cdn", &cloudfront.DistributionArgs{
		Enabled:           pulumi.Bool(true),
		IsIpv6Enabled:     pulumi.Bool(true),
		Comment:           pulumi.Sprintf("%s delivery", args.Name),
		DefaultRootObject: pulumi.String(args.IndexDocument),
		Aliases:           aliases,
		PriceClass:        pulumi.String("PriceClass_100"),

		Origins: cloudfront.DistributionOriginArray{
			&cloudfront.DistributionOriginArgs{
				DomainName: siteBucket.BucketRegionalDomainName,
				OriginId:   pulumi.String(siteOriginID),
				S3OriginConfig: &cloudfront.DistributionOriginS3OriginConfigArgs{
					OriginAccessIdentity: pulumi.String(""),
				},
			},
		},

		DefaultCacheBehavior: &cloudfront.DistributionDefaultCacheBehaviorArgs{
			TargetOriginId:       pulumi.String(siteOriginID),
			ViewerProtocolPolicy: pulumi.String("redirect-to-https"),
			AllowedMethods:       pulumi.StringArray{pulumi.String("GET"), pulumi.String("HEAD"), pulumi.String("OPTIONS")},
			CachedMethods:        pulumi.StringArray{pulumi.String("GET"), pulumi.String("HEAD")},
			Compress:             pulumi.Bool(true),
			MinTtl:               pulumi.Int(0),
			DefaultTtl:           pulumi.Int(300),
			MaxTtl:               pulumi.Int(86400),
			ForwardedValues: &cloudfront.DistributionDefaultCacheBehaviorForwardedValuesArgs{
				QueryString: pulumi.Bool(false),
				Cookies: &cloudfront.DistributionDefaultCacheBehaviorForwardedValuesCookiesArgs{
					Forward: pulumi.String("none"),
				},
			},
		},

		// the bucket answers unknown keys with 403; serve the SPA entry
		// point instead so client-side routing works
		CustomErrorResponses: cloudfront.DistributionCustomErrorResponseArray{
			&cloudfront.DistributionCustomErrorResponseArgs{
				ErrorCode:          pulumi.Int(403),
				ResponseCode:       pulumi.Int(200),
				ResponsePagePath:   pulumi.String("/" + args.IndexDocument),
				ErrorCachingMinTtl: pulumi.Int(300),
			},
		},

		Restrictions: &cloudfront.DistributionRestrictionsArgs{
			GeoRestriction: restriction,
		},

		ViewerCertificate: &cloudfront.DistributionViewerCertificateArgs{
			AcmCertificateArn:      pulumi.String(args.CertificateArn),
			SslSupportMethod:       pulumi.String("sni-only"),
			MinimumProtocolVersion: pulumi.String("TLSv1.2_2021"),
		},

		LoggingConfig: &cloudfront.DistributionLoggingConfigArgs{
			Bucket:         logBucket.BucketDomainName,
			IncludeCookies: pulumi.Bool(false),
			Prefix:         pulumi.String("cdn/"),
		},
	})
}
