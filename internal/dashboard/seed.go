package dashboard

import (
	"time"

	"learnhub/internal/domain"
)

const sampleVideo = "/media/videos/video.mp4"

// DefaultCatalog is the built-in course content. It is used when no
// database is configured and to seed an empty one.
func DefaultCatalog() domain.Catalog {
	seeded := time.Date(2025, time.March, 21, 9, 0, 0, 0, time.UTC)
	return domain.Catalog{
		Course: domain.Course{
			Title:       "دوره جامع توسعه وب",
			Description: "از HTML و CSS تا جاوااسکریپت پیشرفته و پروژه نهایی",
			Status:      domain.CourseStarted,
		},
		Roadmap: []domain.RoadmapStep{
			{
				Title:       "آشنایی با مفاهیم اولیه",
				Description: "یادگیری HTML و CSS پایه",
				Status:      domain.StepCompleted,
				Details:     "در این مرحله، شما با ساختار وب و استایل‌دهی آشنا می‌شوید. مفاهیم HTML مانند تگ‌ها، ویژگی‌ها و ساختار صفحه و همچنین CSS برای طراحی ظاهر صفحات وب شامل رنگ‌ها، فونت‌ها و چیدمان را یاد خواهید گرفت.",
			},
			{
				Title:       "جاوااسکریپت مقدماتی",
				Description: "آشنایی با متغیرها، توابع و DOM",
				Status:      domain.StepCompleted,
				Details:     "این بخش به یادگیری اصول اولیه جاوااسکریپت اختصاص دارد. شما با متغیرها، انواع داده‌ها، توابع، حلقه‌ها و نحوه تعامل با DOM برای دستکاری محتوای صفحات وب آشنا می‌شوید.",
			},
			{
				Title:       "جاوااسکریپت پیشرفته",
				Description: "کار با APIها و برنامه‌نویسی غیرهمزمان",
				Status:      domain.StepCurrent,
				Details:     "در این مرحله، مفاهیم پیشرفته جاوااسکریپت مانند برنامه‌نویسی غیرهمزمان (Promises و async/await)، کار با APIها برای دریافت داده‌های خارجی، و مدیریت رویدادهای پیچیده را یاد خواهید گرفت.",
			},
			{
				Title:       "فریم‌ورک‌های فرانت‌اند",
				Description: "یادگیری React یا Vue",
				Status:      domain.StepPending,
				Details:     "این بخش به یادگیری فریم‌ورک‌های مدرن فرانت‌اند مانند React یا Vue اختصاص دارد. شما با مفاهیم کامپوننت‌ها، مدیریت حالت، و ساخت رابط‌های کاربری پویا و مقیاس‌پذیر آشنا خواهید شد.",
			},
			{
				Title:       "پروژه نهایی",
				Description: "ساخت یک اپلیکیشن کامل",
				Status:      domain.StepPending,
				Details:     "در این مرحله، تمام مهارت‌های خود را در یک پروژه واقعی به کار خواهید گرفت. شما یک اپلیکیشن وب کامل طراحی و پیاده‌سازی خواهید کرد که شامل فرانت‌اند، تعامل با APIها و طراحی کاربرپسند است.",
			},
		},
		Videos: []domain.Video{
			{Title: "ویدیو ۱", Description: "معرفی دوره", Duration: "۵ دقیقه", Src: sampleVideo},
			{Title: "ویدیو ۲", Description: "مفاهیم اولیه", Duration: "۸ دقیقه", Src: sampleVideo},
			{Title: "ویدیو ۳", Description: "تمرین عملی", Duration: "۱۰ دقیقه", Src: sampleVideo},
			{Title: "ویدیو ۴", Description: "جمع‌بندی", Duration: "۷ دقیقه", Src: sampleVideo},
		},
		Resources: []domain.ResourceGroup{
			{
				Session: "جلسه ۱: معرفی HTML",
				Chapter: "فصل ۱: مفاهیم اولیه",
				Links: []domain.ResourceLink{
					{Title: "مستندات MDN برای HTML", URL: "https://developer.mozilla.org/en-US/docs/Web/HTML"},
					{Title: "آموزش W3Schools HTML", URL: "https://www.w3schools.com/html/"},
				},
			},
			{
				Session: "جلسه ۲: استایل‌دهی با CSS",
				Chapter: "فصل ۱: مفاهیم اولیه",
				Links: []domain.ResourceLink{
					{Title: "مستندات MDN برای CSS", URL: "https://developer.mozilla.org/en-US/docs/Web/CSS"},
					{Title: "CSS Tricks", URL: "https://css-tricks.com/"},
				},
			},
			{
				Session: "جلسه ۳: جاوااسکریپت مقدماتی",
				Chapter: "فصل ۲: جاوااسکریپت",
				Links: []domain.ResourceLink{
					{Title: "مستندات MDN برای جاوااسکریپت", URL: "https://developer.mozilla.org/en-US/docs/Web/JavaScript"},
				},
			},
			{
				Session: "جلسه ۴: کار با APIها",
				Chapter: "فصل ۳: جاوااسکریپت پیشرفته",
				Links: []domain.ResourceLink{
					{Title: "آموزش Fetch API", URL: "https://developer.mozilla.org/en-US/docs/Web/API/Fetch_API"},
					{Title: "مقاله async/await", URL: "https://javascript.info/async-await"},
				},
			},
		},
		Notifications: []domain.Notification{
			{Message: "تکلیف جدید برای جلسه ۳ منتشر شد", CreatedAt: seeded.Add(48 * time.Hour)},
			{Message: "ویدیوی جمع‌بندی فصل ۱ اضافه شد", CreatedAt: seeded.Add(24 * time.Hour)},
			{Message: "به دوره خوش آمدید", CreatedAt: seeded},
		},
	}
}
