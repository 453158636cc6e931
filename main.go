package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	dbsqlite "github.com/neverho0d/readnlearn-sub001/internal/adapters/db/sqlite"
	expcsv "github.com/neverho0d/readnlearn-sub001/internal/adapters/export/csvdeck"
	expjson "github.com/neverho0d/readnlearn-sub001/internal/adapters/export/jsondeck"
	exportreg "github.com/neverho0d/readnlearn-sub001/internal/adapters/export/registry"
	promptRenderer "github.com/neverho0d/readnlearn-sub001/internal/adapters/prompt"
	"github.com/neverho0d/readnlearn-sub001/internal/adapters/source/markdown"
	"github.com/neverho0d/readnlearn-sub001/internal/adapters/source/plaintext"
	srcreg "github.com/neverho0d/readnlearn-sub001/internal/adapters/source/registry"
	translatefactory "github.com/neverho0d/readnlearn-sub001/internal/adapters/translate/factory"
	apiapp "github.com/neverho0d/readnlearn-sub001/internal/api/app"
	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/logger"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
	exporterusecase "github.com/neverho0d/readnlearn-sub001/internal/usecase/exporter"
	"github.com/neverho0d/readnlearn-sub001/internal/usecase/importer"
	jobsusecase "github.com/neverho0d/readnlearn-sub001/internal/usecase/jobs"
	readerusecase "github.com/neverho0d/readnlearn-sub001/internal/usecase/reader"
	translatorusecase "github.com/neverho0d/readnlearn-sub001/internal/usecase/translator"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	log := logger.New(os.Getenv("READNLEARN_LOG_LEVEL"), true)

	// Create an instance of the app structure
	app := NewApp()

	// Initialize database and repositories
	db, dberr := dbsqlite.Init("data/readnlearn.db")
	if dberr != nil {
		log.Fatal().Err(dberr).Msg("open database")
	}
	docRepo := dbsqlite.NewDocumentRepo(db)
	phraseRepo := dbsqlite.NewPhraseRepo(db)
	providerRepo := dbsqlite.NewProviderRepo(db)
	templatesRepo := dbsqlite.NewTemplateRepo(db)
	cacheRepo := dbsqlite.NewCacheRepo(db)
	jobRepo := dbsqlite.NewJobRepo(db)
	settingsRepo := dbsqlite.NewSettingsRepo(db)

	// Loader registry and importer service
	loaderRegistry := srcreg.New()
	loaderRegistry.Register(plaintext.New())
	loaderRegistry.Register(markdown.New())
	importSvc := importer.New(docRepo, loaderRegistry)

	// Prompt renderer and translator service
	pr := promptRenderer.New(templatesRepo)
	transSvc := translatorusecase.New(translatorusecase.Deps{
		Providers: providerRepo,
		Cache:     cacheRepo,
		Prompt:    pr,
		BuildProvider: func(p *domain.Provider) (ports.Provider, error) {
			prov, ok := translatefactory.FromProvider(p)
			if !ok {
				return nil, fmt.Errorf("unsupported provider: %s", p.Type)
			}
			return prov, nil
		},
	})

	// Reader service and job runner
	readerSvc := readerusecase.New(readerusecase.Deps{Docs: docRepo, Phrases: phraseRepo, Log: log})
	runner := jobsusecase.NewRunner(jobsusecase.Deps{Jobs: jobRepo, Docs: docRepo, Phrases: phraseRepo, Providers: providerRepo}, transSvc)
	app.SetRunner(runner)
	app.SetReader(readerSvc)

	// Exporters and service
	expReg := exportreg.New()
	expReg.Register(expjson.New())
	expReg.Register(expcsv.New())
	expSvc := exporterusecase.New(docRepo, phraseRepo, expReg)

	// API bindings
	documentAPI := apiapp.NewDocumentAPI(docRepo, importSvc)
	readerAPI := apiapp.NewReaderAPI(readerSvc)
	phraseAPI := apiapp.NewPhraseAPI(phraseRepo, readerSvc)
	providerAPI := apiapp.NewProviderAPI(providerRepo)
	jobsAPI := apiapp.NewJobsAPI(runner, jobRepo)
	exportAPI := apiapp.NewExportAPI(expSvc)
	settingsAPI := apiapp.NewSettingsAPI(settingsRepo)

	// Create application with options
	err := wails.Run(&options.App{
		Title:  "readnlearn",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		Bind: []interface{}{
			app,
			documentAPI,
			readerAPI,
			phraseAPI,
			providerAPI,
			jobsAPI,
			exportAPI,
			settingsAPI,
		},
	})

	if err != nil {
		log.Error().Err(err).Msg("run app")
	}
}
