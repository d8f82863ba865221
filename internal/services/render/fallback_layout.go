package render

// fallbackLayout is the built-in HTML layout used when the MJML layout or
// its external compiler is unavailable. It carries the same placeholders as
// the MJML templates.
const fallbackLayout = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Brevis — {{ subtitle }}</title>
    <style>
        body {
            font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 0;
        }
        .container {
            max-width: 600px;
            margin: 0 auto;
            background-color: #ffffff;
        }
        .header {
            text-align: center;
            padding: 30px 20px 10px;
        }
        .header h1 {
            font-size: 24px;
            font-weight: 700;
            margin: 0 0 10px 0;
            color: #1a1a1a;
        }
        .header .subtitle {
            font-size: 16px;
            color: #666666;
            margin: 0;
        }
        .content {
            padding: 20px 30px 30px;
            font-size: 15px;
            color: #333333;
            line-height: 1.7;
        }
        .content h2 {
            font-size: 20px;
            font-weight: 700;
            margin: 30px 0 15px 0;
            color: #1a1a1a;
            border-bottom: 2px solid #0066cc;
            padding-bottom: 8px;
        }
        .content h3 {
            font-size: 17px;
            font-weight: 700;
            margin: 25px 0 12px 0;
            color: #1a1a1a;
        }
        .content ul {
            margin: 10px 0 20px 0;
            padding-left: 20px;
        }
        .content li {
            margin-bottom: 8px;
            line-height: 1.6;
        }
        .content p {
            margin: 0 0 12px 0;
        }
        .content strong, .content b {
            font-weight: 600;
            color: #1a1a1a;
        }
        .insight-card {
            background: #f8f9fa;
            border-left: 4px solid #0066cc;
            padding: 16px 20px;
            margin: 20px 0;
            border-radius: 4px;
        }
        .insight-card h3 {
            margin-top: 0;
            color: #0066cc;
            font-size: 16px;
        }
        .content table {
            width: 100%;
            border-collapse: collapse;
            margin: 15px 0;
        }
        .content th {
            background: #f8f8f8;
            padding: 10px;
            text-align: left;
            font-weight: 600;
            border-bottom: 2px solid #e0e0e0;
        }
        .content td {
            padding: 10px;
            border-bottom: 1px solid #f0f0f0;
        }
        .footer {
            font-size: 12px;
            color: #999999;
            margin-top: 30px;
            padding: 20px 30px 30px;
            border-top: 1px solid #e0e0e0;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Brevis</h1>
            <p class="subtitle">{{ subtitle }}</p>
            <p style="font-size: 12px; color: #999; margin-top: 5px;">
                Automated Intelligence | Generated {{ current_date }}
            </p>
        </div>
        <div class="content">
            {{ content }}
        </div>
        <div class="footer">
            Automated Brevis Report<br/>
            Analysis Period: {{ date_range }}<br/>
            Generated from {{ total_meetings }} qualified meetings | Internal use only
        </div>
    </div>
</body>
</html>`
