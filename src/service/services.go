package service

var (
	IFileCheckerService = &FileCheckerServiceImpl{}
	ICsvLoadService     = &CsvLoadServiceImpl{}
	IZipService         = &ZipServiceImpl{}
	IMergeService       = &MergeServiceImpl{}
	IAggregateService   = &AggregateServiceImpl{}
	ISummaryService     = &SummaryServiceImpl{}
	IExportService      = &ExportServiceImpl{}
	IChartService       = &ChartServiceImpl{}
	IDashboardService   = &DashboardServiceImpl{}
)
