package deps

import (
	"context"
	"fmt"
	"passreset/internal/config"
	"passreset/internal/core/domain/account"
	"passreset/internal/core/domain/audit"
	dl "passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/mailer"
	"passreset/internal/core/domain/token"
	dbaudit "passreset/internal/db/audit"
	dbtoken "passreset/internal/db/token"
	accountprovider "passreset/internal/implementations/account_provider"
	"passreset/internal/implementations/logging"
	mailerimpl "passreset/internal/implementations/mailer"
	tokengenerator "passreset/internal/implementations/token_generator"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB *pgxpool.Pool

	Now func() time.Time

	TokenRepository token.Repository
	TokenGenerator  token.Generator
	AuditLog        audit.Log
	ResetLinkSender mailer.ResetLinkSender
	AccountProvider account.Provider
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.TokenRepository = dbtoken.NewPgxRepository(deps.DB)
	deps.AuditLog = dbaudit.NewPgxAuditLog(deps.DB)
	deps.TokenGenerator = tokengenerator.NewUUID()

	deps.initResetLinkSender()
	deps.initAccountProvider()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initResetLinkSender() {
	if deps.Config.MailerBackend == config.MailerBackendSES {
		deps.ResetLinkSender = mailerimpl.NewSESSender(
			deps.initAwsConfig(),
			deps.Config.AwsEmailSender,
			deps.Config.AwsEmailResetTemplate,
		)
		return
	}
	deps.ResetLinkSender = mailerimpl.NewSMTPSender(
		deps.Config.SMTPHost,
		deps.Config.SMTPPort,
		deps.Config.SMTPUsername,
		deps.Config.SMTPPassword,
		deps.Config.SMTPSecure,
		deps.Config.EmailFrom,
	)
}

func (deps *Deps) initAwsConfig() aws.Config {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (deps *Deps) initAccountProvider() {
	client := accountprovider.New(
		deps.Config.ProviderAPIURL,
		deps.Config.ProviderAccessToken,
		deps.Config.ProviderProductID,
		deps.Config.ProviderRequestTimeout,
	)

	ctx, cancel := context.WithTimeout(context.Background(), deps.Config.ProviderRequestTimeout)
	defer cancel()
	if err := client.VerifyProduct(ctx); err != nil {
		deps.Logger.Error(
			ctx,
			"Could not verify account provider credentials.",
			dl.Entry("err", err),
		)
		panic("could not verify account provider credentials")
	}
	deps.Logger.Info(
		ctx,
		"Account provider credentials verified.",
		dl.Entry("productID", deps.Config.ProviderProductID),
	)

	deps.AccountProvider = client
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
